package sites

import (
	"fmt"
	"sort"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch"
)

// Registry maps site names to adapters. It is built once at startup and
// only read afterwards.
type Registry struct {
	sites map[string]Site
}

// NewRegistry registers the given sites by name.
func NewRegistry(sites ...Site) *Registry {
	r := &Registry{sites: make(map[string]Site, len(sites))}
	for _, s := range sites {
		r.sites[s.Name()] = s
	}
	return r
}

// Get returns the site registered as name.
func (r *Registry) Get(name string) (Site, error) {
	s, ok := r.sites[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidSite, name)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sites))
	for name := range r.sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Deps are the shared dependencies of the built-in sites.
type Deps struct {
	// Fetcher is used by most sites.
	Fetcher core.Fetcher
	// Browser is used by sites that reject non-browser clients. Defaults to Fetcher.
	Browser core.Fetcher
	// Store caches fetched pages; nil disables caching.
	Store fetch.Store
	// Client options shared by every site client (rate limit, clock).
	ClientOptions []fetch.ClientOption
}

// Default builds the registry of every built-in web site. The local text
// file source is not registered, since registry sites can be chosen by
// request parameters in the web server.
func Default(deps Deps) (*Registry, error) {
	browser := deps.Browser
	if browser == nil {
		browser = deps.Fetcher
	}

	client := func(base string, f core.Fetcher) (*fetch.Client, error) {
		return fetch.NewClient(base, f, deps.Store, deps.ClientOptions...)
	}

	ccl, err := client(ColorCodedURL, deps.Fetcher)
	if err != nil {
		return nil, err
	}
	kl, err := client(KLyricsURL, deps.Fetcher)
	if err != nil {
		return nil, err
	}
	lt, err := client(LyricsTranslateURL, deps.Fetcher)
	if err != nil {
		return nil, err
	}
	mxm, err := client(MusixmatchURL, browser)
	if err != nil {
		return nil, err
	}

	return NewRegistry(
		NewColorCoded(ccl),
		NewKLyrics(kl),
		NewLyricsTranslate(lt),
		NewMusixmatch(mxm),
	), nil
}
