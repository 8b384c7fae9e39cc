// Package hybrid merges two single-language sources into one lyrics bundle,
// e.g. Hangul from one site and an English translation from another.
package hybrid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// Part names the source, endpoint and language taken from one side.
type Part struct {
	Source   core.LyricsSource
	Endpoint string
	Language string
}

func (p Part) fetch(ctx context.Context) (core.Lines, string, error) {
	lyrics, err := p.Source.Lyrics(ctx, p.Endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s lyrics from %s: %w", p.Language, p.Endpoint, err)
	}
	if err := lyrics.Require(p.Language); err != nil {
		return nil, "", fmt.Errorf("%s: %w", p.Endpoint, err)
	}
	return lyrics.Lines[p.Language], lyrics.Title, nil
}

// Combine fetches both parts and returns their lines under one bundle.
// The title is the explicit title if given, else the first part's
// discovered title, else the second's.
func Combine(ctx context.Context, first, second Part, title string) (*core.Lyrics, error) {
	firstLines, firstTitle, err := first.fetch(ctx)
	if err != nil {
		return nil, err
	}
	secondLines, secondTitle, err := second.fetch(ctx)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "combined lyrics",
		"first_title", firstTitle, "second_title", secondTitle)

	for _, t := range []string{title, firstTitle, secondTitle} {
		if t != "" {
			title = t
			break
		}
	}

	return &core.Lyrics{
		Lines: map[string]core.Lines{
			first.Language:  firstLines,
			second.Language: secondLines,
		},
		Title: title,
	}, nil
}

// Source adapts a pair of parts to core.LyricsSource so a hybrid fetch can
// go through the same pipeline as a single site. The endpoint passed to
// Lyrics is ignored; each part carries its own.
type Source struct {
	First  Part
	Second Part
	Title  string
}

// Lyrics combines the two parts.
func (s *Source) Lyrics(ctx context.Context, _ string) (*core.Lyrics, error) {
	return Combine(ctx, s.First, s.Second, s.Title)
}
