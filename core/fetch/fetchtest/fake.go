// Package fetchtest provides an in-memory core.Fetcher for tests.
package fetchtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// Fetcher serves canned HTML keyed by absolute URL and counts requests.
type Fetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

// New creates a Fetcher serving pages.
func New(pages map[string]string) *Fetcher {
	return &Fetcher{pages: pages, calls: make(map[string]int)}
}

// Fetch returns the canned page or an error for unknown URLs.
func (f *Fetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[url]++
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected status 404 for %s", url)
	}
	return &core.FetchResult{URL: url, StatusCode: 200, HTML: html}, nil
}

// Calls returns how many times url was fetched.
func (f *Fetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// Total returns the number of fetches across all URLs.
func (f *Fetcher) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}
