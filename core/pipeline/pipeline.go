// Package pipeline orchestrates one song end to end:
// fetch → normalize → render → write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/normalize"
	"github.com/gaurav-prasanna/lyricpipe/core/output"
)

// Request describes one song to process.
type Request struct {
	// Endpoint is passed to the source and is the title of last resort.
	Endpoint string
	// Title overrides the title the source discovers.
	Title     string
	Site      string
	SourceURL string
	Options   normalize.Options
}

// Pipeline renders songs with one renderer into one output directory.
type Pipeline struct {
	Renderer core.Renderer
	Writer   *output.Writer
}

// New creates a Pipeline.
func New(renderer core.Renderer, writer *output.Writer) *Pipeline {
	return &Pipeline{Renderer: renderer, Writer: writer}
}

// Song fetches and normalizes a song without rendering it.
//
// On a stanza mismatch the song is returned along with the
// *normalize.MismatchError, so callers can offer the report for repair.
func Song(ctx context.Context, src core.LyricsSource, req Request) (core.Song, error) {
	lyrics, err := src.Lyrics(ctx, req.Endpoint)
	if err != nil {
		return core.Song{}, err
	}
	if err := lyrics.Require(core.Korean, core.English); err != nil {
		return core.Song{}, err
	}

	title := req.Title
	if title == "" {
		title = lyrics.Title
	}
	if title == "" {
		title = req.Endpoint
	}

	stanzas, err := normalize.Normalize(map[string]core.Lines{
		core.Korean:  lyrics.Lines[core.Korean],
		core.English: lyrics.Lines[core.English],
	}, req.Options)

	song := core.Song{
		Title:     title,
		Site:      req.Site,
		SourceURL: req.SourceURL,
		Stanzas:   stanzas,
	}
	return song, err
}

// Process runs the full pipeline and returns the written path. The output
// directory is validated before anything is fetched.
func (p *Pipeline) Process(ctx context.Context, src core.LyricsSource, req Request) (string, error) {
	if err := p.Writer.Validate(); err != nil {
		return "", err
	}

	song, err := Song(ctx, src, req)
	if err != nil {
		return "", err
	}
	return p.Write(ctx, song)
}

// Write renders an already normalized song and writes it.
func (p *Pipeline) Write(ctx context.Context, song core.Song) (string, error) {
	data, err := p.Renderer.Render(song)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	path, err := p.Writer.Write(song.Title, data, p.Renderer.Extension())
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "saved lyrics", "title", song.Title, "path", path)
	return path, nil
}
