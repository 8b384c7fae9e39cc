package sites

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/extract"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch"
	"github.com/gaurav-prasanna/lyricpipe/crawl"
)

// MusixmatchURL is the musixmatch.com base URL.
const MusixmatchURL = "https://musixmatch.com"

const translationSuffix = "/translation/english"

var (
	lyricsLink = regexp.MustCompile(`/lyrics/`)
	albumLink  = regexp.MustCompile(`/album/`)
)

// Musixmatch scrapes musixmatch.com translation pages, where each lyric
// row holds the original line and its translation.
type Musixmatch struct {
	base
}

// NewMusixmatch creates the musixmatch adapter. The client should send
// browser-like headers.
func NewMusixmatch(client *fetch.Client) *Musixmatch {
	return &Musixmatch{base{name: "musixmatch", client: client}}
}

func translationEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasSuffix(endpoint, translationSuffix) {
		endpoint += translationSuffix
	}
	return endpoint
}

// SongURL returns the English translation page for a song.
func (m *Musixmatch) SongURL(endpoint string) string {
	return m.client.URL(translationEndpoint(endpoint), nil)
}

// Lyrics returns the original and translated lines of a song.
func (m *Musixmatch) Lyrics(ctx context.Context, endpoint string) (*core.Lyrics, error) {
	doc, err := m.document(ctx, translationEndpoint(endpoint))
	if err != nil {
		return nil, err
	}

	header := doc.Find("div.mxm-track-title").First()
	track := strings.TrimSpace(header.Find("h1").First().Contents().Last().Text())
	artist := strings.TrimSpace(header.Find("h2").First().Text())

	container := doc.Find("div.mxm-track-lyrics-container").First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%s %s: no lyrics container found", m.name, endpoint)
	}

	var korean, english core.Lines
	container.Find("div.mxm-translatable-line-readonly").Each(func(_ int, row *goquery.Selection) {
		parts := row.Find(`div[class=""]`)
		parts.Each(func(i int, part *goquery.Selection) {
			text := part.Text()
			if text == "" {
				text = core.BreakMarker
			}
			switch i {
			case 0:
				korean = append(korean, text)
			case 1:
				english = append(english, text)
			}
		})
		// A row without a translation is a stanza gap on the English side.
		if parts.Length() == 1 && len(korean) != len(english) {
			english = append(english, core.BreakMarker)
		}
	})

	lyrics := newLyrics()
	lyrics.Title = fmt.Sprintf("%s - %s", artist, track)
	lyrics.Lines[core.Korean] = korean
	lyrics.Lines[core.English] = english
	return lyrics, nil
}

// Search lists track pages matching query.
func (m *Musixmatch) Search(ctx context.Context, query, _ string) ([]core.SearchResult, error) {
	endpoint := fmt.Sprintf("search/%s/tracks", url.PathEscape(query))
	page, err := m.client.Search(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	for _, link := range crawl.Links(doc, m.client.URL(endpoint, nil), lyricsLink) {
		results = append(results, core.SearchResult{Song: link.Text, Link: extract.SitePath(link.Href)})
	}
	return results, nil
}

// Index lists every track of every album on an artist's album page.
func (m *Musixmatch) Index(ctx context.Context, artist string) ([]core.IndexResult, error) {
	endpoint := fmt.Sprintf("artist/%s/albums", artist)
	page, err := m.client.Index(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page)
	if err != nil {
		return nil, err
	}

	albums := crawl.NewQueue()
	names := make(map[string]string)
	for _, link := range crawl.Links(doc, m.client.URL(endpoint, nil), albumLink) {
		year := strings.TrimSpace(link.Anchor.Parent().Next().Text())
		if albums.Add(link.Href) {
			names[link.Href] = fmt.Sprintf("[%s] %s", year, link.Text)
		}
	}

	var results []core.IndexResult
	for albums.HasNext() {
		href := albums.Next()
		album, err := m.albumTracks(ctx, href, names[href])
		if err != nil {
			return nil, err
		}
		results = append(results, album...)
	}
	return results, nil
}

func (m *Musixmatch) albumTracks(ctx context.Context, href, album string) ([]core.IndexResult, error) {
	endpoint := extract.SitePath(href)
	page, err := m.client.Page(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page)
	if err != nil {
		return nil, err
	}

	var tracks []core.IndexResult
	for _, link := range crawl.Links(doc, m.client.URL(endpoint, nil), lyricsLink) {
		name := strings.TrimSpace(link.Anchor.Find(`h2[class$="title"]`).First().Text())
		if name == "" {
			name = link.Text
		}
		tracks = append(tracks, core.IndexResult{Album: album, Song: name, Link: extract.SitePath(link.Href)})
	}
	return tracks, nil
}
