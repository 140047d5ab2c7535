package filterlist

import "errors"

var (
	// ErrUnterminatedIf is returned when a !#if block has no matching
	// !#endif before end of input (spec §4.6).
	ErrUnterminatedIf = errors.New("filterlist: unterminated !#if block")

	// ErrUnmatchedEndif is returned on a !#endif with no open !#if.
	ErrUnmatchedEndif = errors.New("filterlist: unmatched !#endif")

	// ErrIncludeCycle is returned when !#include re-enters a URL already on
	// the active include stack (spec §4.6, §8).
	ErrIncludeCycle = errors.New("filterlist: include cycle detected")

	// ErrIncludeDepthExceeded is returned when !#include nesting exceeds
	// MaxIncludeDepth (spec §4.6).
	ErrIncludeDepthExceeded = errors.New("filterlist: include depth exceeded")

	// ErrBadExpression is returned when a !#if condition fails to parse.
	ErrBadExpression = errors.New("filterlist: malformed !#if expression")

	// ErrDiffChecksumMismatch is returned when a diff patch's pre- or
	// post-image checksum does not match (spec §4.7).
	ErrDiffChecksumMismatch = errors.New("filterlist: diff checksum mismatch")

	// ErrDiffBlockNotFound is returned when no patch block matches the
	// filter's title or URL.
	ErrDiffBlockNotFound = errors.New("filterlist: no matching diff block")

	// ErrDiffHunkMalformed is returned when a diff hunk cannot be parsed.
	ErrDiffHunkMalformed = errors.New("filterlist: malformed diff hunk")
)

// MaxIncludeDepth bounds !#include nesting (spec §4.6).
const MaxIncludeDepth = 8
