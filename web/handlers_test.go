package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lyricpipe/core/fetch"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch/fetchtest"
	"github.com/gaurav-prasanna/lyricpipe/sites"
)

const psychoPage = `<html><body><div class="td-post-content">
<h2>Psycho Hangul</h2>
<p>한 줄<br>두 줄</p>
<p>세 줄</p>
<h2>Psycho English Translation</h2>
<p>one<br>two</p>
<p>three</p>
</div></body></html>`

const mismatchPage = `<html><body><div class="td-post-content">
<h2>Feel My Rhythm Hangul</h2>
<p>가</p>
<p>나</p>
<h2>Feel My Rhythm English Translation</h2>
<p>a<br>b</p>
</div></body></html>`

const searchResultsHTML = `<html><body>
<h3 class="entry-title"><a href="https://klyrics.net/red-velvet-psycho-lyrics">Red Velvet – Psycho Lyrics</a></h3>
</body></html>`

func testServer(t *testing.T) http.Handler {
	t.Helper()
	client, err := fetch.NewClient(sites.KLyricsURL, fetchtest.New(map[string]string{
		sites.KLyricsURL + "/red-velvet-psycho-lyrics":  psychoPage,
		sites.KLyricsURL + "/red-velvet-feel-my-rhythm": mismatchPage,
		sites.KLyricsURL + "/?s=red+velvet":             searchResultsHTML,
		sites.KLyricsURL + "/?s=nothing":                "<html><body></body></html>",
	}), nil, fetch.WithRateLimit(0))
	require.NoError(t, err)

	srv, err := New(sites.NewRegistry(sites.NewKLyrics(client)), "klyrics", 12)
	require.NoError(t, err)
	return srv.Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHome_RedirectsToSearch(t *testing.T) {
	rec := get(t, testServer(t), "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/search/", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_Reused(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/search/", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)
	assert.Equal(t, "abc123", rec.Header().Get("X-Request-ID"))
}

func TestSearchPost_RedirectsToGet(t *testing.T) {
	form := url.Values{"q": {" red velvet "}, "site": {"klyrics"}}
	req := httptest.NewRequest(http.MethodPost, "/search/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/search/?q=red+velvet&site=klyrics", rec.Header().Get("Location"))
}

func TestSearch(t *testing.T) {
	h := testServer(t)

	tests := []struct {
		name   string
		target string
		status int
		want   string
	}{
		{"empty form", "/search/", http.StatusOK, `<form method="post"`},
		{"results", "/search/?q=red+velvet&site=klyrics", http.StatusOK, `href="/song/red-velvet-psycho-lyrics?site=klyrics"`},
		{"no results", "/search/?q=nothing", http.StatusOK, "No results."},
		{"empty query", "/search/?q=+&site=klyrics", http.StatusOK, "You must provide a valid query."},
		{"invalid site", "/search/?q=x&site=nope", http.StatusOK, "Invalid site."},
		{"index unsupported", "/search/?q=red+velvet&site=klyrics&index=1", http.StatusNotImplemented, "index is not implemented for klyrics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestSong(t *testing.T) {
	rec := get(t, testServer(t), "/song/red-velvet-psycho-lyrics?site=klyrics")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Psycho</title>")
	assert.Contains(t, body, "한 줄<br>두 줄")
	assert.Contains(t, body, "three")
}

func TestSong_InvalidSite(t *testing.T) {
	rec := get(t, testServer(t), "/song/red-velvet-psycho-lyrics?site=nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSong_FetchError(t *testing.T) {
	rec := get(t, testServer(t), "/song/missing?site=klyrics")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "unexpected status 404")
}

func TestSong_MismatchRendersReformat(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/song/red-velvet-feel-my-rhythm?site=klyrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/reformatted/"`)
	assert.Contains(t, body, `<textarea name="Korean" rows="3">가`+"\n\n"+`나</textarea>`)
	assert.Contains(t, body, `<textarea name="English" rows="3">a`+"\n"+`b</textarea>`)
	assert.Contains(t, body, "https://klyrics.net/red-velvet-feel-my-rhythm")

	rec = get(t, h, "/song/red-velvet-feel-my-rhythm?site=klyrics&ignore_len=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<textarea")
}

func postForm(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReformatted(t *testing.T) {
	h := testServer(t)

	rec := postForm(t, h, "/reformatted/", url.Values{
		"title":   {"Feel My Rhythm"},
		"Korean":  {"가\r\n나"},
		"English": {"a\r\nb"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Feel My Rhythm</title>")
	assert.Contains(t, rec.Body.String(), "가<br>나")

	rec = postForm(t, h, "/reformatted/", url.Values{
		"title":   {"Feel My Rhythm"},
		"Korean":  {"가\n\n나"},
		"English": {"a\nb"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<textarea")
}

func TestFlag(t *testing.T) {
	assert.False(t, flag(""))
	assert.False(t, flag("false"))
	assert.False(t, flag("0"))
	assert.True(t, flag("1"))
	assert.True(t, flag("on"))
	assert.True(t, flag("true"))
}

func TestSong_LocalFilesNotServed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("private line\n"), 0644))

	reg, err := sites.Default(sites.Deps{Fetcher: fetchtest.New(nil)})
	require.NoError(t, err)
	srv, err := New(reg, "klyrics", 12)
	require.NoError(t, err)

	rec := get(t, srv.Handler(), "/song/"+url.PathEscape(path)+"?site=file")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "private line")
}
