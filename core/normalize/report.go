package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/chunk"
)

// LanguageReport is the stanza layout of one language in a Report.
type LanguageReport struct {
	// Text is the stanzas joined back into editable text.
	Text string
	// LineCounts holds the number of lines in each stanza.
	LineCounts []int
}

// Report describes a stanza count mismatch in enough detail for someone
// to re-partition the text by hand.
type Report struct {
	Languages map[string]LanguageReport
	Counts    map[string]int
	// MaxLines is the longest single stanza across all languages.
	MaxLines int
}

// Langs returns the report's languages in sorted order.
func (r *Report) Langs() []string {
	langs := make([]string, 0, len(r.Languages))
	for lang := range r.Languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// TextLines returns the line count of the longest joined text, blank
// separator lines included. Useful for sizing an editor.
func (r *Report) TextLines() int {
	max := 0
	for _, lr := range r.Languages {
		if n := strings.Count(lr.Text, "\n") + 1; n > max {
			max = n
		}
	}
	return max
}

// MismatchError is returned by Normalize when stanza counts differ.
type MismatchError struct {
	Report *Report
}

func (e *MismatchError) Error() string {
	parts := make([]string, 0, len(e.Report.Counts))
	for _, lang := range e.Report.Langs() {
		parts = append(parts, fmt.Sprintf("%s=%d", lang, e.Report.Counts[lang]))
	}
	return "stanza lengths don't match: " + strings.Join(parts, ", ")
}

// Check returns nil when every language has the same number of stanzas,
// and a Report describing the difference otherwise.
func Check(set core.StanzaSet) *Report {
	counts := set.Counts()
	distinct := make(map[int]struct{}, len(counts))
	for _, n := range counts {
		distinct[n] = struct{}{}
	}
	if len(distinct) <= 1 {
		return nil
	}

	report := &Report{
		Languages: make(map[string]LanguageReport, len(set)),
		Counts:    counts,
	}
	for lang, stanzas := range set {
		lr := LanguageReport{
			Text:       chunk.Join(stanzas),
			LineCounts: make([]int, len(stanzas)),
		}
		for i, stanza := range stanzas {
			lr.LineCounts[i] = len(stanza)
			if len(stanza) > report.MaxLines {
				report.MaxLines = len(stanza)
			}
		}
		report.Languages[lang] = lr
	}
	return report
}
