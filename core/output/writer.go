// Package output handles file naming and writing for rendered songs.
// Files are named from the song title, e.g. "lyrics_Red_Velvet_-_Psycho.html".
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// DefaultDir returns <user cache dir>/lyric_fetcher/lyrics.
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache directory: %w", err)
	}
	return filepath.Join(cache, "lyric_fetcher", "lyrics"), nil
}

// New creates a Writer targeting the given output directory. An empty
// outputDir uses DefaultDir. The directory is created on first write.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		outputDir = dir
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Validate fails with core.ErrInvalidOutputDir when the output path exists
// but is not a directory.
func (w *Writer) Validate() error {
	info, err := os.Stat(w.OutputDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: it exists but is not a directory: %s", core.ErrInvalidOutputDir, w.OutputDir)
	}
	return nil
}

// Write stores data as lyrics_<title><ext> and returns the path.
func (w *Writer) Write(title string, data []byte, ext string) (string, error) {
	if err := w.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(w.OutputDir, Filename(title, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename builds the output file name for a title.
// Example: "Red Velvet - Psycho?" → lyrics_Red_Velvet_-_Psycho.html
func Filename(title, ext string) string {
	return "lyrics_" + sanitize(title) + ext
}

// sanitize replaces spaces and path separators with underscores and drops
// question marks.
func sanitize(s string) string {
	return strings.NewReplacer(" ", "_", "/", "_", `\`, "_", "?", "").Replace(s)
}
