package filterlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdguardTeam/FilterListManager/internal/fetch"
)

// FetchFunc retrieves the contents of an absolute URL, used by the
// directive interpreter to resolve !#include (C1 is injected through this
// port rather than imported directly, keeping C6 fetcher-agnostic).
type FetchFunc func(ctx context.Context, absoluteURL string) (string, error)

// ResolveDirectives interprets !#if/!#endif conditional blocks and inlines
// !#include targets, returning the fully expanded line set ready for header
// parsing and rule classification (C6, spec §4.6).
func ResolveDirectives(ctx context.Context, normalizedURL, contents string, constants ConstantSet, fetchFn FetchFunc) ([]string, error) {
	visited := map[string]struct{}{normalizedURL: {}}
	return resolveLines(ctx, strings.Split(contents, "\n"), normalizedURL, constants, fetchFn, visited, 0)
}

func resolveLines(ctx context.Context, lines []string, normalizedURL string, constants ConstantSet, fetchFn FetchFunc, visited map[string]struct{}, depth int) ([]string, error) {
	var stack []bool
	active := func() bool {
		for _, v := range stack {
			if !v {
				return false
			}
		}
		return true
	}

	var out []string

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "!#if "):
			cond := strings.TrimSpace(strings.TrimPrefix(line, "!#if "))
			result, err := EvalExpression(cond, constants)
			if err != nil {
				return nil, err
			}
			stack = append(stack, result)

		case strings.TrimSpace(line) == "!#endif":
			if len(stack) == 0 {
				return nil, ErrUnmatchedEndif
			}
			stack = stack[:len(stack)-1]

		case strings.HasPrefix(line, "!#include "):
			if !active() {
				continue
			}

			ref := strings.TrimSpace(strings.TrimPrefix(line, "!#include "))
			resolved, err := fetch.ResolveRelative(normalizedURL, ref)
			if err != nil {
				return nil, fmt.Errorf("filterlist: resolve include %q: %w", ref, err)
			}
			normalized, err := fetch.NormalizeURL(resolved)
			if err != nil {
				return nil, fmt.Errorf("filterlist: normalize include %q: %w", ref, err)
			}

			if _, seen := visited[normalized]; seen {
				return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, normalized)
			}
			if depth+1 > MaxIncludeDepth {
				return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, normalized)
			}

			contents, err := fetchFn(ctx, resolved)
			if err != nil {
				return nil, fmt.Errorf("filterlist: fetch include %q: %w", resolved, err)
			}

			childVisited := make(map[string]struct{}, len(visited)+1)
			for k := range visited {
				childVisited[k] = struct{}{}
			}
			childVisited[normalized] = struct{}{}

			included, err := resolveLines(ctx, strings.Split(contents, "\n"), normalized, constants, fetchFn, childVisited, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, included...)

		default:
			if active() {
				out = append(out, line)
			}
		}
	}

	if len(stack) != 0 {
		return nil, ErrUnterminatedIf
	}
	return out, nil
}
