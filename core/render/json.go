package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// JSONRenderer renders the song as structured JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type songJSON struct {
	Title   string         `json:"title"`
	Site    string         `json:"site,omitempty"`
	Source  string         `json:"source_url,omitempty"`
	Counts  map[string]int `json:"stanza_counts"`
	Stanzas []stanzaJSON   `json:"stanzas"`
}

type stanzaJSON struct {
	Korean      []string `json:"korean"`
	Translation []string `json:"translation"`
}

// Render marshals the paired stanzas with their metadata.
func (r *JSONRenderer) Render(song core.Song) ([]byte, error) {
	rows := Rows(song)
	out := songJSON{
		Title:   song.Title,
		Site:    song.Site,
		Source:  song.SourceURL,
		Counts:  song.Stanzas.Counts(),
		Stanzas: make([]stanzaJSON, len(rows)),
	}
	for i, row := range rows {
		out.Stanzas[i] = stanzaJSON{Korean: nonNil(row.Korean), Translation: nonNil(row.Translation)}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

func nonNil(s core.Stanza) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
