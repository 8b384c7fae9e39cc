// Package normalize turns raw per-language line sequences into aligned
// stanza sets. Every language goes through the same steps; none is
// privileged, since the languages may come from different sites.
package normalize

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// Overrides are caller-supplied corrections for one language.
type Overrides struct {
	// Breaks are zero-based line indices that start a new stanza. Negative
	// values count back from the end of the scraped lines.
	Breaks []int
	// Extra lines are appended after the scraped lines.
	Extra []string
	// StripBreaks discards the source's break markers so that only Breaks count.
	StripBreaks bool
}

// Options control a Normalize call.
type Options struct {
	Overrides map[string]Overrides
	// StripBreaks applies Overrides.StripBreaks to every language.
	StripBreaks bool
	// TolerateMismatch returns unequal stanza sets with a warning instead of an error.
	TolerateMismatch bool
}

// Normalize splits every language's lines into stanzas and checks that all
// languages ended up with the same number of stanzas.
//
// On a mismatch the stanza set is still returned, together with a
// *MismatchError unless opts.TolerateMismatch is set.
func Normalize(lyrics map[string]core.Lines, opts Options) (core.StanzaSet, error) {
	set := make(core.StanzaSet, len(lyrics))
	for lang, lines := range lyrics {
		ov := opts.Overrides[lang]
		set[lang] = Stanzas(lines, ov, opts.StripBreaks || ov.StripBreaks)
	}

	report := Check(set)
	if report == nil {
		return set, nil
	}

	logLines(lyrics)
	err := &MismatchError{Report: report}
	if opts.TolerateMismatch {
		slog.Warn(err.Error())
		return set, nil
	}
	return set, err
}

// Stanzas splits one language's lines. A break happens on a break marker
// or at a forced index; a non-marker line at a forced index opens the new
// stanza. Blank lines are dropped and empty stanzas are never emitted.
func Stanzas(lines core.Lines, ov Overrides, stripBreaks bool) []core.Stanza {
	if stripBreaks {
		lines = withoutBreaks(lines)
	}
	forced := resolveBreaks(ov.Breaks, len(lines))

	var (
		stanzas []core.Stanza
		stanza  core.Stanza
	)
	flush := func() {
		if len(stanza) > 0 {
			stanzas = append(stanzas, stanza)
			stanza = nil
		}
	}
	step := func(i int, raw string) {
		line := strings.TrimSpace(raw)
		isMarker := line == core.BreakMarker
		if isMarker || forced[i] {
			flush()
			if isMarker {
				return
			}
		}
		if line != "" {
			stanza = append(stanza, line)
		}
	}

	for i, raw := range lines {
		step(i, raw)
	}
	for j, raw := range ov.Extra {
		step(len(lines)+j, raw)
	}
	flush()
	return stanzas
}

// resolveBreaks maps negative indices onto n, the scraped line count.
func resolveBreaks(breaks []int, n int) map[int]bool {
	forced := make(map[int]bool, len(breaks))
	for _, b := range breaks {
		if b < 0 {
			b += n
		}
		if b >= 0 {
			forced[b] = true
		}
	}
	return forced
}

func withoutBreaks(lines core.Lines) core.Lines {
	out := make(core.Lines, 0, len(lines))
	for _, line := range lines {
		if !core.IsBreak(line) {
			out = append(out, line)
		}
	}
	return out
}

func logLines(lyrics map[string]core.Lines) {
	langs := make([]string, 0, len(lyrics))
	for lang := range lyrics {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		slog.Debug("raw lyrics", "lang", lang, "lines", len(lyrics[lang]),
			"text", strings.Join(lyrics[lang], "\n"))
	}
}
