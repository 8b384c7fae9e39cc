// Package chunk converts between stanzas and their plain-text form:
// lines joined by newlines, stanzas separated by a blank line.
// It is used to hand a mismatched song to a person for re-partitioning
// and to read the corrected text back.
package chunk

import (
	"strings"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// Join renders stanzas as editable text.
func Join(stanzas []core.Stanza) string {
	parts := make([]string, len(stanzas))
	for i, stanza := range stanzas {
		parts[i] = strings.Join(stanza, "\n")
	}
	return strings.Join(parts, "\n\n")
}

// Split parses edited text back into stanzas. Carriage returns are
// removed, every blank line ends a stanza and lines are trimmed.
func Split(text string) []core.Stanza {
	text = strings.ReplaceAll(text, "\r", "")

	var (
		stanzas []core.Stanza
		stanza  core.Stanza
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(stanza) > 0 {
				stanzas = append(stanzas, stanza)
				stanza = nil
			}
			continue
		}
		stanza = append(stanza, line)
	}
	if len(stanza) > 0 {
		stanzas = append(stanzas, stanza)
	}
	return stanzas
}
