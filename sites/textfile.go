package sites

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/extract"
)

// TextFile reads lyrics from a local UTF-8 text file. Endpoints are file
// paths, and the same lines are returned for both languages so either half
// of a hybrid fetch can use them.
type TextFile struct{}

// NewTextFile creates the file source.
func NewTextFile() *TextFile {
	return &TextFile{}
}

func (*TextFile) Name() string {
	return "file"
}

// SongURL returns a file:// URL for the path.
func (*TextFile) SongURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}

// Lyrics reads the file. Blank lines become break markers.
func (*TextFile) Lyrics(_ context.Context, path string) (*core.Lyrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lyrics file: %w", err)
	}

	raw := extract.SplitLines(string(data))
	lines := make(core.Lines, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			line = core.BreakMarker
		}
		lines = append(lines, line)
	}

	return &core.Lyrics{Lines: map[string]core.Lines{
		core.Korean:  lines,
		core.English: lines,
	}}, nil
}

func (*TextFile) Search(context.Context, string, string) ([]core.SearchResult, error) {
	return nil, &core.UnsupportedError{Site: "file", Op: "search"}
}

func (*TextFile) Index(context.Context, string) ([]core.IndexResult, error) {
	return nil, &core.UnsupportedError{Site: "file", Op: "index"}
}
