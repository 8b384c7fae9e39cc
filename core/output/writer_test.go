package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Psycho", "lyrics_Psycho.html"},
		{"Red Velvet - Psycho", "lyrics_Red_Velvet_-_Psycho.html"},
		{"Why?", "lyrics_Why.html"},
		{"AC/DC", "lyrics_AC_DC.html"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.title, ".html"))
		})
	}
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("Psycho", []byte("<html></html>"), ".html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lyrics_Psycho.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestWriter_InvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	w, err := New(file)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Validate(), core.ErrInvalidOutputDir)
	_, err = w.Write("Psycho", nil, ".html")
	assert.ErrorIs(t, err, core.ErrInvalidOutputDir)
}

func TestNew_DefaultDir(t *testing.T) {
	want, err := DefaultDir()
	if err != nil {
		t.Skip("no user cache dir:", err)
	}
	w, err := New("")
	require.NoError(t, err)
	assert.Equal(t, want, w.OutputDir)
}
