// Package fetch classifies and dispatches absolute URLs to a local file read
// or an injected HTTP client (C1), and caches diff-patch bodies across the
// filters that share one within a single update cycle (C2).
package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the classified form of a URL's scheme (spec §4.1).
type Scheme int

const (
	SchemeEmpty Scheme = iota
	SchemeFile
	SchemeHTTP
	SchemeHTTPS
	SchemeOther
)

// ErrSchemeIncorrect is returned when a URL's scheme is not one this
// fetcher can dispatch.
var ErrSchemeIncorrect = errors.New("fetch: scheme is incorrect")

// ClassifyScheme parses rawURL's scheme case-insensitively into one of
// {file, http, https, empty, other} (spec §4.1).
func ClassifyScheme(rawURL string) Scheme {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SchemeOther
	}

	switch strings.ToLower(u.Scheme) {
	case "":
		return SchemeEmpty
	case "file":
		return SchemeFile
	case "http":
		return SchemeHTTP
	case "https":
		return SchemeHTTPS
	default:
		return SchemeOther
	}
}

// IsWebScheme reports whether s is http or https.
func (s Scheme) IsWebScheme() bool {
	return s == SchemeHTTP || s == SchemeHTTPS
}

func (s Scheme) String() string {
	switch s {
	case SchemeFile:
		return "file"
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	case SchemeEmpty:
		return "empty"
	default:
		return "other"
	}
}

// NormalizeURL strips query and fragment and lowercases the host, so
// relative-URL resolution for !#include and Diff-Path stays stable across
// re-fetches of the same cursor (spec §4.3).
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch: normalize %q: %w", rawURL, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return u.String(), nil
}

// ResolveRelative resolves ref against base, used for !#include and
// Diff-Path URLs that may be relative to the filter's own location.
func ResolveRelative(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("fetch: parse base %q: %w", base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("fetch: parse ref %q: %w", ref, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
