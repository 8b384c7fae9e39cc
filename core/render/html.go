package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

//go:embed templates/song.html
var templateFS embed.FS

var songTemplate = template.Must(template.ParseFS(templateFS, "templates/song.html"))

// HTMLRenderer renders a printable side-by-side HTML page.
type HTMLRenderer struct {
	FontSize int
}

// NewHTMLRenderer creates an HTMLRenderer. Sizes below 1 use DefaultFontSize.
func NewHTMLRenderer(fontSize int) *HTMLRenderer {
	if fontSize < 1 {
		fontSize = DefaultFontSize
	}
	return &HTMLRenderer{FontSize: fontSize}
}

type songPage struct {
	Title            string
	SourceURL        string
	FontSize         int
	TranslationLabel string
	Rows             []Row
}

// Render executes the song template.
func (r *HTMLRenderer) Render(song core.Song) ([]byte, error) {
	var buf bytes.Buffer
	err := songTemplate.Execute(&buf, songPage{
		Title:            song.Title,
		SourceURL:        song.SourceURL,
		FontSize:         r.FontSize,
		TranslationLabel: TranslationLabel,
		Rows:             Rows(song),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
