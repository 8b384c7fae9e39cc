// Package core defines the shared types and pipeline interfaces for lyricpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// BreakMarker is the sentinel line a source emits where it visually
// separates stanzas.
const BreakMarker = "<br/>"

// Language names used as Stanza Set and Lyrics keys.
const (
	Korean  = "Korean"
	English = "English"
)

// Lines is the ordered raw line sequence scraped for one language.
type Lines []string

// IsBreak reports whether line is a break marker.
func IsBreak(line string) bool {
	return strings.TrimSpace(line) == BreakMarker
}

// Stanza is a non-empty run of lyric lines between two breaks.
type Stanza []string

// StanzaSet maps a language name to its stanzas.
type StanzaSet map[string][]Stanza

// Counts returns the stanza count per language.
func (s StanzaSet) Counts() map[string]int {
	counts := make(map[string]int, len(s))
	for lang, stanzas := range s {
		counts[lang] = len(stanzas)
	}
	return counts
}

// Lyrics is what a source returns for one endpoint: raw lines per
// language plus the title it discovered on the page (may be empty).
type Lyrics struct {
	Lines map[string]Lines
	Title string
}

// Song is a normalized song handed to renderers.
type Song struct {
	Title     string
	Site      string
	SourceURL string
	Stanzas   StanzaSet
}

// SearchResult is one candidate page returned by a site search.
type SearchResult struct {
	Song string `json:"song"`
	Link string `json:"link"`
}

// IndexResult is one song listed on an artist index page.
type IndexResult struct {
	Album string `json:"album"`
	Song  string `json:"song"`
	Link  string `json:"link"`
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// LyricsSource returns the raw line sequences for a song endpoint.
type LyricsSource interface {
	Lyrics(ctx context.Context, endpoint string) (*Lyrics, error)
}

// Renderer converts a normalized song into a final output format.
type Renderer interface {
	Render(song Song) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}
