package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AdguardTeam/FilterListManager/internal/fetch"
)

func TestClassifySchemeAndWebScheme(t *testing.T) {
	cases := []struct {
		url   string
		want  fetch.Scheme
		isWeb bool
	}{
		{"https://example.com/list.txt", fetch.SchemeHTTPS, true},
		{"http://example.com/list.txt", fetch.SchemeHTTP, true},
		{"file:///tmp/list.txt", fetch.SchemeFile, false},
		{"list.txt", fetch.SchemeEmpty, false},
		{"ftp://example.com/list.txt", fetch.SchemeOther, false},
	}

	for _, c := range cases {
		got := fetch.ClassifyScheme(c.url)
		require.Equal(t, c.want, got, c.url)
		require.Equal(t, c.isWeb, got.IsWebScheme(), c.url)
	}
}

func TestNormalizeURLStripsQueryAndFragment(t *testing.T) {
	got, err := fetch.NormalizeURL("https://Example.com/list.txt?tok=abc#section")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/list.txt", got)
}

func TestResolveRelative(t *testing.T) {
	got, err := fetch.ResolveRelative("https://example.com/filters/base.txt", "../includes/extra.txt")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/includes/extra.txt", got)
}

func TestPatchCacheInsertAndGetCopy(t *testing.T) {
	cache := fetch.NewPatchCache()

	_, ok := cache.GetCopy("https://example.com/patch.diff")
	require.False(t, ok)

	cache.Insert("https://example.com/patch.diff", "patch body")
	body, ok := cache.GetCopy("https://example.com/patch.diff")
	require.True(t, ok)
	require.Equal(t, "patch body", body)
}

func TestFetcherFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("||example.com^\n"), 0o644))

	f := &fetch.Fetcher{}
	body, err := f.Fetch(context.Background(), "file://"+path, time.Second)
	require.NoError(t, err)
	require.Equal(t, "||example.com^\n", body)
}

func TestFetcherFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "flmctl-test", r.Header.Get("User-Agent"))
		w.Write([]byte("||example.com^\n"))
	}))
	defer srv.Close()

	f := &fetch.Fetcher{UserAgent: "flmctl-test"}
	body, err := f.Fetch(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, "||example.com^\n", body)
}

func TestFetcherFetchRejectsUnsupportedScheme(t *testing.T) {
	f := &fetch.Fetcher{}
	_, err := f.Fetch(context.Background(), "ftp://example.com/list.txt", time.Second)
	require.ErrorIs(t, err, fetch.ErrSchemeIncorrect)
}
