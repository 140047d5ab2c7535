package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// HTTPDoer is the port an injected HTTP transport satisfies; *http.Client
// implements it directly. Keeping this as an interface (rather than
// importing http.Client concretely everywhere) lets hosts swap in a proxy-
// aware or test-double transport without this package depending on their
// wiring (spec §1 Non-goals: "the HTTP client transport itself ... treated
// as a pluggable fetcher").
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher dispatches an absolute URL to a local file read or the injected
// HTTPDoer, per its classified scheme (C1).
type Fetcher struct {
	HTTP      HTTPDoer
	UserAgent string
	Root      *os.Root // optional sandbox root for file:// reads
}

// Fetch returns the contents of absoluteURL as a string, or
// ErrSchemeIncorrect for anything outside {file, http, https}.
func (f *Fetcher) Fetch(ctx context.Context, absoluteURL string, timeout time.Duration) (string, error) {
	scheme := ClassifyScheme(absoluteURL)

	switch {
	case scheme == SchemeFile:
		return f.fetchFile(absoluteURL)
	case scheme.IsWebScheme():
		return f.fetchHTTP(ctx, absoluteURL, timeout)
	default:
		return "", fmt.Errorf("%w: %s", ErrSchemeIncorrect, absoluteURL)
	}
}

func (f *Fetcher) fetchFile(absoluteURL string) (string, error) {
	path, err := filePathFromURL(absoluteURL)
	if err != nil {
		return "", err
	}

	if f.Root != nil {
		file, err := f.Root.Open(path)
		if err != nil {
			return "", fmt.Errorf("fetch: open sandboxed file %q: %w", path, err)
		}
		defer file.Close()
		contents, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("fetch: read sandboxed file %q: %w", path, err)
		}
		return string(contents), nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fetch: read file %q: %w", path, err)
	}
	return string(contents), nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, absoluteURL string, timeout time.Duration) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, absoluteURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: build request for %q: %w", absoluteURL, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: request %q: %w", absoluteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch: %q returned status %d", absoluteURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch: read body of %q: %w", absoluteURL, err)
	}
	return string(body), nil
}

func filePathFromURL(absoluteURL string) (string, error) {
	u, err := url.Parse(absoluteURL)
	if err != nil {
		return "", fmt.Errorf("fetch: parse file url %q: %w", absoluteURL, err)
	}
	if u.Path != "" {
		return u.Path, nil
	}
	return u.Opaque, nil
}
