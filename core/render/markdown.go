package render

import (
	"fmt"
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// MarkdownRenderer renders the song as Markdown, one section per stanza
// with the translation quoted below the original.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render builds an HTML fragment and converts it with html-to-markdown.
func (r *MarkdownRenderer) Render(song core.Song) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(song.Title))
	for _, row := range Rows(song) {
		if len(row.Korean) > 0 {
			b.WriteString("<p>" + stanzaHTML(row.Korean) + "</p>")
		}
		if len(row.Translation) > 0 {
			b.WriteString("<blockquote><p>" + stanzaHTML(row.Translation) + "</p></blockquote>")
		}
	}
	if song.SourceURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Source</a></p>`, html.EscapeString(song.SourceURL))
	}

	markdown, err := htmltomarkdown.ConvertString(b.String())
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(markdown + "\n"), nil
}

func stanzaHTML(stanza core.Stanza) string {
	lines := make([]string, len(stanza))
	for i, line := range stanza {
		lines[i] = html.EscapeString(line)
	}
	return strings.Join(lines, "<br>")
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
