package normalize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

const br = core.BreakMarker

func TestStanzas(t *testing.T) {
	tests := []struct {
		name  string
		lines core.Lines
		ov    Overrides
		strip bool
		want  []core.Stanza
	}{
		{
			name:  "no markers yields one stanza",
			lines: core.Lines{" A ", "", "B", "   ", "C"},
			want:  []core.Stanza{{"A", "B", "C"}},
		},
		{
			name:  "markers split stanzas",
			lines: core.Lines{"Hello", br, "World", br, "Foo"},
			want:  []core.Stanza{{"Hello"}, {"World"}, {"Foo"}},
		},
		{
			name:  "consecutive markers collapse",
			lines: core.Lines{br, "A", br, br, " <br/> ", "B", br},
			want:  []core.Stanza{{"A"}, {"B"}},
		},
		{
			name:  "forced break opens a stanza with its line",
			lines: core.Lines{"A", "B", "C", "D"},
			ov:    Overrides{Breaks: []int{2}},
			want:  []core.Stanza{{"A", "B"}, {"C", "D"}},
		},
		{
			name:  "strip existing breaks keeps only forced ones",
			lines: core.Lines{"A", br, "B"},
			ov:    Overrides{Breaks: []int{1}},
			strip: true,
			want:  []core.Stanza{{"A"}, {"B"}},
		},
		{
			name:  "extra lines continue the last stanza",
			lines: core.Lines{"A", br, "B"},
			ov:    Overrides{Extra: []string{"Z"}},
			want:  []core.Stanza{{"A"}, {"B", "Z"}},
		},
		{
			name:  "forced break past the end is a no-op",
			lines: core.Lines{"A", "B"},
			ov:    Overrides{Breaks: []int{7}},
			want:  []core.Stanza{{"A", "B"}},
		},
		{
			name:  "forced break on a marker is a single break",
			lines: core.Lines{"A", br, "B"},
			ov:    Overrides{Breaks: []int{1}},
			want:  []core.Stanza{{"A"}, {"B"}},
		},
		{
			name:  "forced break on a blank line drops the blank",
			lines: core.Lines{"A", "", "B"},
			ov:    Overrides{Breaks: []int{1}},
			want:  []core.Stanza{{"A"}, {"B"}},
		},
		{
			name:  "forced index can land in extra lines",
			lines: core.Lines{"A", "B"},
			ov:    Overrides{Breaks: []int{2}, Extra: []string{"C", "D"}},
			want:  []core.Stanza{{"A", "B"}, {"C", "D"}},
		},
		{
			name:  "negative index resolves before extra lines",
			lines: core.Lines{"A", "B", "C"},
			ov:    Overrides{Breaks: []int{-1}, Extra: []string{"D"}},
			want:  []core.Stanza{{"A", "B"}, {"C", "D"}},
		},
		{
			name:  "no case or punctuation changes",
			lines: core.Lines{"  Hello, WORLD!  "},
			want:  []core.Stanza{{"Hello, WORLD!"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Stanzas(tt.lines, tt.ov, tt.strip)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Stanzas() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStanzas_NegativeIndexMatchesPositive(t *testing.T) {
	lines := core.Lines{"A", "B", "C", "D", "E"}

	neg := Stanzas(lines, Overrides{Breaks: []int{-1}}, false)
	pos := Stanzas(lines, Overrides{Breaks: []int{4}}, false)

	assert.Equal(t, pos, neg)
	assert.Equal(t, []core.Stanza{{"A", "B", "C", "D"}, {"E"}}, neg)
}

func TestStanzas_NegativeIndexAfterStrip(t *testing.T) {
	// After stripping the marker there are three lines, so -1 is index 2.
	lines := core.Lines{"A", br, "B", "C"}

	got := Stanzas(lines, Overrides{Breaks: []int{-1}}, true)

	assert.Equal(t, []core.Stanza{{"A", "B"}, {"C"}}, got)
}

func TestNormalize_Aligned(t *testing.T) {
	lyrics := map[string]core.Lines{
		core.Korean:  {"가", br, "나"},
		core.English: {"ga", "<br/>", "na"},
	}

	set, err := Normalize(lyrics, Options{})

	require.NoError(t, err)
	want := core.StanzaSet{
		core.Korean:  {{"가"}, {"나"}},
		core.English: {{"ga"}, {"na"}},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	lyrics := map[string]core.Lines{
		core.Korean:  {"가", "나", br, "다"},
		core.English: {"ga", "na", "da"},
	}
	opts := Options{Overrides: map[string]Overrides{
		core.English: {Breaks: []int{-1}},
	}}

	first, err := Normalize(lyrics, opts)
	require.NoError(t, err)
	second, err := Normalize(lyrics, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, core.Lines{"ga", "na", "da"}, lyrics[core.English], "input must not be modified")
}

func TestNormalize_PerLanguageOverrides(t *testing.T) {
	lyrics := map[string]core.Lines{
		core.Korean:  {"가", br, "나"},
		core.English: {"ga", br, "na", "da"},
	}
	opts := Options{Overrides: map[string]Overrides{
		core.English: {StripBreaks: true, Breaks: []int{2}},
	}}

	set, err := Normalize(lyrics, opts)

	require.NoError(t, err)
	assert.Equal(t, []core.Stanza{{"가"}, {"나"}}, set[core.Korean])
	assert.Equal(t, []core.Stanza{{"ga", "na"}, {"da"}}, set[core.English])
}

func TestNormalize_Mismatch(t *testing.T) {
	lyrics := map[string]core.Lines{
		core.Korean:  {"가", "나", "다", br, "라"},
		core.English: {"ga", br, "na", br, "da", "ra"},
	}

	set, err := Normalize(lyrics, Options{})

	require.Error(t, err)
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))

	report := mismatch.Report
	assert.Equal(t, 3, report.MaxLines)
	assert.Equal(t, map[string]int{core.Korean: 2, core.English: 3}, report.Counts)
	assert.Equal(t, []int{3, 1}, report.Languages[core.Korean].LineCounts)
	assert.Equal(t, []int{1, 1, 2}, report.Languages[core.English].LineCounts)
	assert.Equal(t, "가\n나\n다\n\n라", report.Languages[core.Korean].Text)
	assert.Equal(t, "ga\n\nna\n\nda\nra", report.Languages[core.English].Text)
	assert.Equal(t, 6, report.TextLines())
	assert.Equal(t, []string{core.English, core.Korean}, report.Langs())
	assert.Equal(t, "stanza lengths don't match: English=3, Korean=2", err.Error())

	// The set is still returned so callers can inspect it.
	assert.Len(t, set[core.Korean], 2)
	assert.Len(t, set[core.English], 3)
}

func TestNormalize_TolerateMismatch(t *testing.T) {
	lyrics := map[string]core.Lines{
		core.Korean:  {"가", br, "나"},
		core.English: {"ga", br, "na", br, "da"},
	}

	set, err := Normalize(lyrics, Options{TolerateMismatch: true})

	require.NoError(t, err)
	assert.Len(t, set[core.Korean], 2)
	assert.Len(t, set[core.English], 3, "no padding is added")
}

func TestCheck(t *testing.T) {
	assert.Nil(t, Check(core.StanzaSet{}))
	assert.Nil(t, Check(core.StanzaSet{core.Korean: {{"a"}}}))
	assert.Nil(t, Check(core.StanzaSet{core.Korean: {{"a"}}, core.English: {{"b", "c"}}}))
	assert.NotNil(t, Check(core.StanzaSet{core.Korean: {{"a"}}, core.English: nil}))
}
