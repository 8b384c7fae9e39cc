package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lyricpipe/core"
	"github.com/gaurav-prasanna/lyricpipe/core/fetch/fetchtest"
)

func TestKeyString(t *testing.T) {
	day := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "stable page key",
			key:  PageKey("klyrics.net", "red-velvet-psycho-lyrics/", nil),
			want: "get__klyrics.net__red-velvet-psycho-lyrics_",
		},
		{
			name: "dated search key",
			key:  DatedKey(KindSearch, "musixmatch.com", "search/red velvet/tracks", nil, day),
			want: "search__musixmatch.com__2024-03-09__search%2Fred%20velvet%2Ftracks",
		},
		{
			name: "dated index key",
			key:  DatedKey(KindIndex, "colorcodedlyrics.com", "2015/03/red-velvet-lyrics-index", nil, day),
			want: "index__colorcodedlyrics.com__2024-03-09__2015%2F03%2Fred-velvet-lyrics-index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestKeyString_ParamsHashed(t *testing.T) {
	a := PageKey("example.com", "search", url.Values{"s": {"psycho"}, "page": {"2"}})
	b := PageKey("example.com", "search", url.Values{"page": {"2"}, "s": {"psycho"}})
	c := PageKey("example.com", "search", url.Values{"s": {"bad boy"}})

	assert.Equal(t, a.String(), b.String(), "parameter order must not matter")
	assert.NotEqual(t, a.String(), c.String())

	parts := strings.Split(a.String(), "__")
	require.Len(t, parts, 4)
	assert.Equal(t, []string{"get", "example.com", "search"}, parts[:3])
	assert.Len(t, parts[3], 64)
}

func TestKeyString_RootEndpointHash(t *testing.T) {
	// "/" encodes to "_", which runs into the separator; the hash is still
	// the final 64 characters.
	key := PageKey("example.com", "/", url.Values{"s": {"psycho"}}).String()
	require.Greater(t, len(key), 64)
	hash := key[len(key)-64:]
	assert.Regexp(t, "^[0-9a-f]{64}$", hash)
	assert.True(t, strings.HasPrefix(key, "get__example.com__"), key)
}

func TestFSStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "get__a__b", []byte("<html>1</html>")))
	require.NoError(t, store.Put(ctx, "get__a__b", []byte("<html>2</html>")))

	body, ok, err := store.Get(ctx, "get__a__b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<html>2</html>", string(body))
	assert.FileExists(t, filepath.Join(store.Dir, "get__a__b.html"))
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "pages.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "k", []byte("one")))
	require.NoError(t, store.Put(ctx, "k", []byte("two")))

	body, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(body))
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := New(WithUserAgent("test-agent"), WithTimeout(5*time.Second))

	res, err := f.Fetch(context.Background(), srv.URL+"/song")
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "<html>ok</html>", res.HTML)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestClientURL(t *testing.T) {
	c, err := NewClient("https://klyrics.net/", fetchtest.New(nil), nil)
	require.NoError(t, err)

	assert.Equal(t, "klyrics.net", c.Host())
	assert.Equal(t, "https://klyrics.net/a/b", c.URL("/a/b", nil))
	assert.Equal(t, "https://klyrics.net/a/b", c.URL("a/b", nil))
	assert.Equal(t, "https://klyrics.net/?s=x+y", c.URL("/", url.Values{"s": {"x y"}}))
	assert.Equal(t, "https://other.com/p", c.URL("https://other.com/p", nil))

	_, err = NewClient("not a url", fetchtest.New(nil), nil)
	assert.Error(t, err)
}

func TestClient_CachesPages(t *testing.T) {
	ctx := context.Background()
	fake := fetchtest.New(map[string]string{"https://example.com/song": "<p>lyrics</p>"})
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	c, err := NewClient("https://example.com", fake, store, WithRateLimit(0))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		body, err := c.Page(ctx, "song", nil)
		require.NoError(t, err)
		assert.Equal(t, "<p>lyrics</p>", body)
	}
	assert.Equal(t, 1, fake.Calls("https://example.com/song"))

	// A new client over the same store does not refetch.
	c2, err := NewClient("https://example.com", fake, store, WithRateLimit(0))
	require.NoError(t, err)
	_, err = c2.Page(ctx, "song", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Total())
}

func TestClient_ConcurrentFetchesShareOneRequest(t *testing.T) {
	ctx := context.Background()
	fake := fetchtest.New(map[string]string{"https://example.com/song": "x"})
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	c, err := NewClient("https://example.com", fake, store, WithRateLimit(0))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Page(ctx, "song", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fake.Total())
}

func TestClient_DatedKeysExpireDaily(t *testing.T) {
	ctx := context.Background()
	fake := fetchtest.New(map[string]string{"https://example.com/?s=q": "results"})
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c, err := NewClient("https://example.com", fake, store,
		WithRateLimit(0), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	params := url.Values{"s": {"q"}}
	_, err = c.Search(ctx, "/", params)
	require.NoError(t, err)
	_, err = c.Search(ctx, "/", params)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Total())

	now = now.Add(24 * time.Hour)
	_, err = c.Search(ctx, "/", params)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Total())
}

func TestClient_FailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	fake := fetchtest.New(nil)
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	c, err := NewClient("https://example.com", fake, store, WithRateLimit(0))
	require.NoError(t, err)

	_, err = c.Page(ctx, "gone", nil)
	require.Error(t, err)
	_, err = c.Page(ctx, "gone", nil)
	require.Error(t, err)

	assert.Equal(t, 2, fake.Calls("https://example.com/gone"))
}

// blockingFetcher holds every fetch until release is closed, failing early
// only if the fetch's own context ends.
type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *blockingFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	f.once.Do(func() { close(f.started) })
	select {
	case <-f.release:
		return &core.FetchResult{URL: url, StatusCode: 200, HTML: "late lyrics"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestClient_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	fetcher := &blockingFetcher{started: make(chan struct{}), release: make(chan struct{})}
	c, err := NewClient("https://example.com", fetcher, nil, WithRateLimit(0))
	require.NoError(t, err)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Page(firstCtx, "song", nil)
		firstErr <- err
	}()
	<-fetcher.started

	type result struct {
		body string
		err  error
	}
	second := make(chan result, 1)
	go func() {
		body, err := c.Page(context.Background(), "song", nil)
		second <- result{body, err}
	}()

	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller kept waiting for the fetch")
	}

	close(fetcher.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "late lyrics", got.body)
}
