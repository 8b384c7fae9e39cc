package sites

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/extract"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch"
)

// ColorCodedURL is the colorcodedlyrics.com base URL.
const ColorCodedURL = "https://colorcodedlyrics.com"

// colorCodedIndexes maps a normalized artist name to its index page.
var colorCodedIndexes = map[string]string{
	"redvelvet": "2015/03/red-velvet-lyrics-index",
	"gidle":     "2018/05/g-dle-lyrics-index",
	"wekimeki":  "2017/09/weki-meki-wikimiki-lyrics-index",
	"blackpink": "2017/09/blackpink-beullaegpingkeu-lyrics-index",
	"ioi":       "2016/05/ioi-lyrics-index",
	"twice":     "2016/04/twice-lyrics-index",
	"mamamoo":   "2016/04/mamamoo-lyric-index",
	"gfriend":   "2016/02/gfriend-yeojachingu-lyrics-index",
	"2ne1":      "2012/02/2ne1_lyrics_index",
	"snsd":      "2012/02/snsd_lyrics_index",
	"missa":     "2011/11/miss_a_lyrics_index",
	"apink":     "2011/11/a_pink_index",
	"momoland":  "2018/02/momoland-momolaendeu-lyrics-index",
}

var (
	indexNamePunct = regexp.MustCompile(`[\[\]~!@#$%^&*(){}:;<>,.?/\\+= -]`)

	// speakerPrefix matches "[Irene/Seulgi] line" member annotations.
	speakerPrefix = regexp.MustCompile(`^\[\w+(?:/\w+)+]\s*(.*)$`)
)

// ColorCoded scrapes colorcodedlyrics.com. Pages show romanization, Hangul
// and translation side by side, either as block-editor columns or in a
// table on older posts.
type ColorCoded struct {
	base
}

// NewColorCoded creates the colorcodedlyrics adapter.
func NewColorCoded(client *fetch.Client) *ColorCoded {
	return &ColorCoded{base{name: "colorcodedlyrics", client: client, resultSelector: "h2.entry-title"}}
}

// Lyrics returns the Korean and English columns of a song page.
func (c *ColorCoded) Lyrics(ctx context.Context, endpoint string) (*core.Lyrics, error) {
	doc, err := c.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	columns, ignoreBR, err := languageColumns(doc)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.name, endpoint, err)
	}

	lyrics := newLyrics()
	lyrics.Title = strings.TrimSpace(doc.Find("h1.entry-title").First().Text())
	lyrics.Lines[core.Korean] = columnLines(columns[1], ignoreBR)
	lyrics.Lines[core.English] = columnLines(columns[2], ignoreBR)
	return lyrics, nil
}

// languageColumns returns the romanized, Korean and English columns.
// Table layouts put <br> between every line as well as newlines in the
// text, so their <br> tags are ignored.
func languageColumns(doc *goquery.Document) ([]*goquery.Selection, bool, error) {
	var columns []*goquery.Selection
	doc.Find(".wp-block-column").Each(func(_ int, col *goquery.Selection) {
		if col.Find("strong .has-inline-color").Length() > 0 {
			columns = append(columns, col)
		}
	})
	if len(columns) >= 3 {
		return columns, false, nil
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, false, fmt.Errorf("unable to find any language columns")
	}
	table := tables.Last()
	columns = columns[:0]
	for i := 1; i <= 3; i++ {
		cell := table.Find(fmt.Sprintf("tr td:nth-child(%d)", i)).First()
		if cell.Length() == 0 {
			return nil, false, fmt.Errorf("lyrics table has no column %d", i)
		}
		columns = append(columns, cell)
	}
	return columns, true, nil
}

// columnLines flattens a column. The first line is the column heading;
// blank lines separate stanzas.
func columnLines(col *goquery.Selection, ignoreBR bool) core.Lines {
	text := strings.TrimSpace(extract.TagText(col, ignoreBR))
	lines := extract.SplitLines(text)
	if len(lines) > 0 {
		lines = lines[1:]
	}

	out := make(core.Lines, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			out = append(out, core.BreakMarker)
			continue
		}
		if m := speakerPrefix.FindStringSubmatch(line); m != nil {
			line = strings.TrimSpace(m[1])
		}
		out = append(out, line)
	}
	return out
}

// Index lists the songs on a configured artist index page.
func (c *ColorCoded) Index(ctx context.Context, name string) ([]core.IndexResult, error) {
	endpoint, ok := colorCodedIndexes[indexNamePunct.ReplaceAllString(strings.ToLower(name), "")]
	if !ok {
		return nil, fmt.Errorf("no index is configured for %q", name)
	}

	page, err := c.client.Index(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page)
	if err != nil {
		return nil, err
	}

	var results []core.IndexResult
	doc.Find("td").Each(func(_ int, td *goquery.Selection) {
		album, _ := td.Find("img").First().Attr("title")
		td.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			results = append(results, core.IndexResult{
				Album: album,
				Song:  strings.TrimSpace(a.Text()),
				Link:  extract.SitePath(href),
			})
		})
	})
	return results, nil
}
