package sites

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/extract"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch"
)

// KLyricsURL is the klyrics.net base URL.
const KLyricsURL = "https://klyrics.net"

var hangulHeading = regexp.MustCompile(`^(.*?)\s+Hangul$`)

// KLyrics scrapes klyrics.net, where each language is an <h2> section
// followed by one <p> per stanza.
type KLyrics struct {
	base
}

// NewKLyrics creates the klyrics adapter.
func NewKLyrics(client *fetch.Client) *KLyrics {
	return &KLyrics{base{name: "klyrics", client: client, resultSelector: "h3.entry-title"}}
}

// Lyrics returns the Hangul and English Translation sections of a post.
func (k *KLyrics) Lyrics(ctx context.Context, endpoint string) (*core.Lyrics, error) {
	doc, err := k.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	content := doc.Find("div.td-post-content").First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("%s %s: no post content found", k.name, endpoint)
	}

	lyrics := newLyrics()
	content.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		heading := strings.TrimSpace(h2.Text())

		var lang string
		switch {
		case strings.HasSuffix(heading, "Hangul"):
			lang = core.Korean
			if m := hangulHeading.FindStringSubmatch(heading); m != nil {
				lyrics.Title = m[1]
			}
		case strings.HasSuffix(heading, "English Translation"):
			lang = core.English
		default:
			return
		}
		slog.DebugContext(ctx, "found lyrics section", "site", k.name, "lang", lang)

		for _, p := range sectionParagraphs(h2) {
			stanza := extract.NonEmpty(extract.TagText(p, false))
			lyrics.Lines[lang] = append(lyrics.Lines[lang], stanza...)
			lyrics.Lines[lang] = append(lyrics.Lines[lang], core.BreakMarker)
		}
	})
	return lyrics, nil
}

// sectionParagraphs returns the <p> siblings directly after h2, stopping at
// the first other element.
func sectionParagraphs(h2 *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	for n := h2.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if n.Data != "p" {
			break
		}
		out = append(out, goquery.NewDocumentFromNode(n).Selection)
	}
	return out
}
