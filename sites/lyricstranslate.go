package sites

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/extract"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch"
)

// LyricsTranslateURL is the lyricstranslate.com base URL.
const LyricsTranslateURL = "https://lyricstranslate.com"

// LyricsTranslate scrapes English translations from lyricstranslate.com.
// It never provides Korean lines, so it is used as the English half of a
// hybrid fetch.
type LyricsTranslate struct {
	base
}

// NewLyricsTranslate creates the lyricstranslate adapter.
func NewLyricsTranslate(client *fetch.Client) *LyricsTranslate {
	return &LyricsTranslate{base{name: "lyricstranslate", client: client}}
}

// Lyrics returns the English translation on a translation page.
func (l *LyricsTranslate) Lyrics(ctx context.Context, endpoint string) (*core.Lyrics, error) {
	doc, err := l.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	artist := strings.TrimSpace(strings.Replace(doc.Find("li.song-node-info-artist").First().Text(), "Artist:", "", 1))
	title := strings.TrimSpace(doc.Find("h2.title-h2").First().Text())

	content := doc.Find("div.ltf").First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("%s %s: no translation found", l.name, endpoint)
	}

	var lines core.Lines
	content.Find("div.par").Each(func(_ int, par *goquery.Selection) {
		lines = append(lines, extract.NonEmpty(extract.TagText(par, false))...)
		lines = append(lines, core.BreakMarker)
	})

	lyrics := newLyrics()
	lyrics.Title = fmt.Sprintf("%s - %s", artist, title)
	lyrics.Lines[core.English] = lines
	return lyrics, nil
}

// Search lists English translations for an artist, optionally narrowed to
// one song.
func (l *LyricsTranslate) Search(ctx context.Context, artist, song string) ([]core.SearchResult, error) {
	if song == "" {
		song = "none"
	}
	endpoint := fmt.Sprintf("en/translations/0/328/%s/%s/none/0/0/0/0", url.PathEscape(artist), url.PathEscape(song))
	page, err := l.client.Search(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	doc.Find("div.ltsearch-results-line").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		lang := row.Find("td.ltsearch-translatelanguages")
		if lang.Length() == 0 || !strings.Contains(lang.Text(), "English") {
			return
		}
		a := row.Find("td.ltsearch-translatenameoriginal").Eq(1).Find("a").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		results = append(results, core.SearchResult{
			Song: strings.TrimSpace(a.Text()),
			Link: extract.SitePath(href),
		})
	})
	return results, nil
}
