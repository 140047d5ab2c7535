// Package filterlist implements the line-oriented filter list parser: a
// cursor over downloaded text (C3), the rule/comment classifier (C4), the
// header parser (C5), the !#if/!#include directive interpreter (C6), and
// the RCS-style diff patch applier (C7).
package filterlist

import "strings"

// Cursor wraps a (normalized_url, contents) pair and exposes a monotonic,
// line-by-line view over contents (C3, spec §4.3).
type Cursor struct {
	NormalizedURL string
	lines         []string
	lineno        int
}

// NewCursor splits contents on '\n'. A trailing newline produces one
// trailing empty line, matching the contract that a body with and without
// a trailing newline differ only by that empty final line (spec §4.3, §8).
func NewCursor(normalizedURL, contents string) *Cursor {
	return &Cursor{
		NormalizedURL: normalizedURL,
		lines:         strings.Split(contents, "\n"),
	}
}

// NextLine returns the next line and advances the cursor, or ("", false) at
// end of input.
func (c *Cursor) NextLine() (string, bool) {
	if c.lineno >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.lineno]
	c.lineno++
	return line, true
}

// Lineno returns the 0-indexed count of lines already consumed.
func (c *Cursor) Lineno() int { return c.lineno }
