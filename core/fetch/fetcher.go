// Package fetch implements the Fetcher interface and the cached,
// rate-limited client the site adapters fetch pages through.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "lyricpipe/1.0 (https://github.com/gaurav-prasanna/lyricpipe)"
)

// BrowserHeaders imitate a desktop Firefox for sites that reject unknown clients.
var BrowserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:108.0) Gecko/20100101 Firefox/108.0",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"DNT":             "1",
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client *resty.Client
}

// Option configures an HTTPFetcher.
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

// WithUserAgent overrides the default User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *resty.Client) {
		if ua != "" {
			c.SetHeader("User-Agent", ua)
		}
	}
}

// WithHeaders sets extra request headers.
func WithHeaders(headers map[string]string) Option {
	return func(c *resty.Client) {
		c.SetHeaders(headers)
	}
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	client := resty.New()
	client.SetTimeout(defaultTimeout)
	client.SetHeader("User-Agent", defaultUserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	for _, opt := range opts {
		opt(client)
	}
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("unexpected status %d for %s", res.StatusCode(), url)
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: res.StatusCode(),
		HTML:       res.String(),
	}, nil
}
