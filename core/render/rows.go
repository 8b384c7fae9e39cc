// Package render provides output renderers for normalized songs.
// Every renderer lays a song out the same way: the title, then per stanza
// index the Korean stanza followed by its translation.
package render

import (
	"errors"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// TranslationLabel is how the English side is labelled in output.
const TranslationLabel = "Translation"

// DefaultFontSize is the body font size, in points, when none is set.
const DefaultFontSize = 12

// ErrNoFont is returned by the PDF renderer when no Unicode font is configured.
var ErrNoFont = errors.New("pdf output needs a UTF-8 TrueType font (set pdf_font)")

// Row pairs the Korean stanza at one index with its translation.
type Row struct {
	Korean      core.Stanza
	Translation core.Stanza
}

// Rows pairs stanzas by index. The shorter language is padded with empty
// stanzas so every row is present.
func Rows(song core.Song) []Row {
	korean := song.Stanzas[core.Korean]
	english := song.Stanzas[core.English]

	n := max(len(korean), len(english))
	rows := make([]Row, n)
	for i := range rows {
		if i < len(korean) {
			rows[i].Korean = korean[i]
		}
		if i < len(english) {
			rows[i].Translation = english[i]
		}
	}
	return rows
}
