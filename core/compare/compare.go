// Package compare finds lines two songs have in common, such as a shared
// hook or a chorus reused across a remix.
package compare

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

// DefaultThreshold is the minimum Jaro-Winkler similarity for a near match.
const DefaultThreshold = 0.9

// Match is a pair of lines, one from each song.
type Match struct {
	Language   string
	Left       string
	Right      string
	Similarity float64 // 1 for exact matches
}

// Exact reports whether the lines matched verbatim (ignoring case).
func (m Match) Exact() bool {
	return m.Similarity == 1
}

// Lines lists the lines shared by a and b, per language present in both.
// Each line is used in at most one match. Exact matches come first; the
// remaining lines are paired with their most similar counterpart when the
// similarity reaches threshold. A threshold of zero or less uses
// DefaultThreshold.
func Lines(a, b core.StanzaSet, threshold float64) []Match {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	langs := make([]string, 0, len(a))
	for lang := range a {
		if _, ok := b[lang]; ok {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)

	var result []Match
	for _, lang := range langs {
		result = append(result, languageMatches(lang, unique(a[lang]), unique(b[lang]), threshold)...)
	}
	return result
}

func languageMatches(lang string, leftList, rightList []string, threshold float64) []Match {
	var result []Match
	matchedLeft := make(map[string]struct{})
	matchedRight := make(map[string]struct{})

	for _, left := range leftList {
		for _, right := range rightList {
			if _, ok := matchedRight[right]; ok {
				continue
			}
			if strings.EqualFold(left, right) {
				result = append(result, Match{Language: lang, Left: left, Right: right, Similarity: 1})
				matchedLeft[left] = struct{}{}
				matchedRight[right] = struct{}{}
				break
			}
		}
	}

	for _, left := range leftList {
		if _, ok := matchedLeft[left]; ok {
			continue
		}

		var mostSimilarity float64
		var mostSimilarRight string
		for _, right := range rightList {
			if _, ok := matchedRight[right]; ok {
				continue
			}
			similarity := matchr.JaroWinkler(strings.ToLower(left), strings.ToLower(right), false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilarRight = right
			}
		}

		if mostSimilarity >= threshold {
			result = append(result, Match{Language: lang, Left: left, Right: mostSimilarRight, Similarity: mostSimilarity})
			matchedLeft[left] = struct{}{}
			matchedRight[mostSimilarRight] = struct{}{}
		}
	}
	return result
}

// unique flattens stanzas into trimmed, non-empty lines in first-seen order.
func unique(stanzas []core.Stanza) []string {
	seen := make(map[string]struct{})
	var lines []string
	for _, stanza := range stanzas {
		for _, line := range stanza {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
			lines = append(lines, line)
		}
	}
	return lines
}
