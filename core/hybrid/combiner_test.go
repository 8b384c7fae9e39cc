package hybrid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lyricpipe/core"
)

type stubSource map[string]*core.Lyrics

func (s stubSource) Lyrics(_ context.Context, endpoint string) (*core.Lyrics, error) {
	l, ok := s[endpoint]
	if !ok {
		return nil, errors.New("not found")
	}
	return l, nil
}

var (
	korean = stubSource{"kor": {
		Lines: map[string]core.Lines{core.Korean: {"한 줄"}, core.English: {"bad translation"}},
		Title: "Psycho",
	}}
	english = stubSource{
		"eng":      {Lines: map[string]core.Lines{core.English: {"one line"}}, Title: "Red Velvet - Psycho"},
		"untitled": {Lines: map[string]core.Lines{core.English: {"one line"}}},
	}
)

func TestCombine(t *testing.T) {
	got, err := Combine(context.Background(),
		Part{Source: korean, Endpoint: "kor", Language: core.Korean},
		Part{Source: english, Endpoint: "eng", Language: core.English},
		"")
	require.NoError(t, err)

	assert.Equal(t, core.Lines{"한 줄"}, got.Lines[core.Korean])
	assert.Equal(t, core.Lines{"one line"}, got.Lines[core.English])
	assert.Equal(t, "Psycho", got.Title)
}

func TestCombine_TitleOrder(t *testing.T) {
	untitledKorean := stubSource{"kor": {Lines: map[string]core.Lines{core.Korean: {"한 줄"}}}}

	tests := []struct {
		name   string
		first  stubSource
		second string
		title  string
		want   string
	}{
		{name: "explicit wins", first: korean, second: "eng", title: "Mine", want: "Mine"},
		{name: "first discovered", first: korean, second: "eng", want: "Psycho"},
		{name: "second discovered", first: untitledKorean, second: "eng", want: "Red Velvet - Psycho"},
		{name: "none", first: untitledKorean, second: "untitled", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Combine(context.Background(),
				Part{Source: tt.first, Endpoint: "kor", Language: core.Korean},
				Part{Source: english, Endpoint: tt.second, Language: core.English},
				tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Title)
		})
	}
}

func TestCombine_Errors(t *testing.T) {
	_, err := Combine(context.Background(),
		Part{Source: english, Endpoint: "eng", Language: core.Korean},
		Part{Source: english, Endpoint: "eng", Language: core.English},
		"")
	assert.ErrorIs(t, err, core.ErrMissingLanguage)

	_, err = Combine(context.Background(),
		Part{Source: korean, Endpoint: "kor", Language: core.Korean},
		Part{Source: english, Endpoint: "missing", Language: core.English},
		"")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSource(t *testing.T) {
	var src core.LyricsSource = &Source{
		First:  Part{Source: korean, Endpoint: "kor", Language: core.Korean},
		Second: Part{Source: english, Endpoint: "eng", Language: core.English},
	}

	got, err := src.Lyrics(context.Background(), "ignored")
	require.NoError(t, err)
	assert.NoError(t, got.Require(core.Korean, core.English))
	assert.Equal(t, "Psycho", got.Title)
}
