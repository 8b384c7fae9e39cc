// Package sites adapts individual lyrics websites to core.LyricsSource.
//
// Every adapter fetches through a fetch.Client, so pages are cached and
// requests to one site are throttled. Adapters that lack a capability
// return a *core.UnsupportedError.
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

// Site is a lyrics website.
type Site interface {
	core.LyricsSource

	// Name is the registry name, e.g. "klyrics".
	Name() string

	// SongURL returns the page URL for a song endpoint.
	SongURL(endpoint string) string

	// Search lists song pages matching query. subQuery narrows the search
	// on sites that take two terms (artist and song).
	Search(ctx context.Context, query, subQuery string) ([]core.SearchResult, error)

	// Index lists the songs on an artist's index page.
	Index(ctx context.Context, name string) ([]core.IndexResult, error)
}

// base carries what most WordPress-style sites share: a client, the
// "?s=" search and the entry-title search result markup.
type base struct {
	name   string
	client *fetch.Client

	// resultSelector selects one search result heading; empty means the
	// site has no search.
	resultSelector string
}

func (b *base) Name() string {
	return b.name
}

func (b *base) SongURL(endpoint string) string {
	return b.client.URL(endpoint, nil)
}

func (b *base) unsupported(op string) error {
	return &core.UnsupportedError{Site: b.name, Op: op}
}

func (b *base) Index(context.Context, string) ([]core.IndexResult, error) {
	return nil, b.unsupported("index")
}

func (b *base) Search(ctx context.Context, query, _ string) ([]core.SearchResult, error) {
	if b.resultSelector == "" {
		return nil, b.unsupported("search")
	}

	page, err := b.client.Search(ctx, "/", url.Values{"s": {query}})
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	doc.Find(b.resultSelector).Each(func(_ int, post *goquery.Selection) {
		href, ok := post.Find("a").First().Attr("href")
		if !ok {
			return
		}
		results = append(results, core.SearchResult{
			Song: strings.TrimSpace(post.Text()),
			Link: extract.SitePath(href),
		})
	})
	return results, nil
}

// document fetches and parses a song page.
func (b *base) document(ctx context.Context, endpoint string) (*goquery.Document, error) {
	page, err := b.client.Page(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.name, err)
	}
	return doc, nil
}

func newLyrics() *core.Lyrics {
	return &core.Lyrics{Lines: map[string]core.Lines{}}
}
