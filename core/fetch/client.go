package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

const defaultRate = 1.0 // requests per second per site

// Client fetches pages of one site through a cache.
//
// Concurrent requests for the same key share one network fetch, and all
// network fetches are throttled by a per-site token bucket.
type Client struct {
	base    string
	host    string
	fetcher core.Fetcher
	store   Store
	limiter *rate.Limiter
	group   singleflight.Group
	now     func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRateLimit sets the request rate. Zero or negative disables throttling.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithClock replaces time.Now for dated keys.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client for baseURL. A nil store disables caching.
func NewClient(baseURL string, fetcher core.Fetcher, store Store, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", baseURL)
	}

	c := &Client{
		base:    strings.TrimSuffix(baseURL, "/"),
		host:    parsed.Host,
		fetcher: fetcher,
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(defaultRate), 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Host returns the site host, e.g. "klyrics.net".
func (c *Client) Host() string {
	return c.host
}

// URL builds the absolute URL for an endpoint. Absolute endpoints are kept.
func (c *Client) URL(endpoint string, params url.Values) string {
	u := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		u = c.base + "/" + strings.TrimPrefix(endpoint, "/")
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// Page fetches a song or album page. Pages are cached without expiry.
func (c *Client) Page(ctx context.Context, endpoint string, params url.Values) (string, error) {
	return c.get(ctx, PageKey(c.host, endpoint, params), endpoint, params)
}

// Search fetches a search results page, cached for the current day.
func (c *Client) Search(ctx context.Context, endpoint string, params url.Values) (string, error) {
	return c.get(ctx, DatedKey(KindSearch, c.host, endpoint, params, c.now()), endpoint, params)
}

// Index fetches an artist index page, cached for the current day.
func (c *Client) Index(ctx context.Context, endpoint string, params url.Values) (string, error) {
	return c.get(ctx, DatedKey(KindIndex, c.host, endpoint, params, c.now()), endpoint, params)
}

func (c *Client) get(ctx context.Context, key Key, endpoint string, params url.Values) (string, error) {
	name := key.String()
	if body, ok := c.cached(ctx, name); ok {
		return body, nil
	}

	// The flight outlives any single caller; each caller stops waiting when
	// its own context ends.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (any, error) {
		// Another flight may have filled the cache between the check and here.
		if body, ok := c.cached(flightCtx, name); ok {
			return body, nil
		}
		if err := c.limiter.Wait(flightCtx); err != nil {
			return nil, err
		}

		target := c.URL(endpoint, params)
		slog.DebugContext(flightCtx, "fetching page", "url", target, "key", name)
		res, err := c.fetcher.Fetch(flightCtx, target)
		if err != nil {
			return nil, err
		}

		if c.store != nil {
			if err := c.store.Put(flightCtx, name, []byte(res.HTML)); err != nil {
				slog.WarnContext(flightCtx, "failed to cache page", "key", name, "err", err)
			}
		}
		return res.HTML, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			slog.DebugContext(ctx, "shared in-flight fetch", "key", name)
		}
		return res.Val.(string), nil
	}
}

func (c *Client) cached(ctx context.Context, name string) (string, bool) {
	if c.store == nil {
		return "", false
	}
	body, ok, err := c.store.Get(ctx, name)
	if err != nil {
		slog.WarnContext(ctx, "failed to read cache", "key", name, "err", err)
		return "", false
	}
	if ok {
		slog.DebugContext(ctx, "cache hit", "key", name)
	}
	return string(body), ok
}
