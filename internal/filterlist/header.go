package filterlist

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Header holds the metadata recognized from a filter's leading comment
// block (C5, spec §4.5).
type Header struct {
	Title       string
	Description string
	Version     string
	TimeUpdated time.Time
	Expires     time.Duration
	Homepage    string
	License     string
	Checksum    string
	DiffPath    string

	// Unknown carries header-shaped lines whose key is not in the
	// recognized set, preserved verbatim (spec §4.5, round-trip property
	// in §8).
	Unknown map[string]string
}

var knownHeaderKeys = map[string]func(*Header, string) error{
	"title":       func(h *Header, v string) error { h.Title = v; return nil },
	"description": func(h *Header, v string) error { h.Description = v; return nil },
	"version":     func(h *Header, v string) error { h.Version = v; return nil },
	"homepage":    func(h *Header, v string) error { h.Homepage = v; return nil },
	"license":     func(h *Header, v string) error { h.License = v; return nil },
	"checksum":    func(h *Header, v string) error { h.Checksum = v; return nil },
	"diff-path":   func(h *Header, v string) error { h.DiffPath = v; return nil },
	"timeupdated": func(h *Header, v string) error {
		t, err := parseTimeUpdated(v)
		if err != nil {
			return err
		}
		h.TimeUpdated = t
		return nil
	},
	"expires": func(h *Header, v string) error {
		d, err := parseExpires(v)
		if err != nil {
			return err
		}
		h.Expires = d
		return nil
	},
}

// ParseHeader consumes header lines from cur until the first rule line (not
// consumed) or end of input, recognizing `! Key: Value` lines case-
// insensitively against a fixed set and retaining unrecognized ones as
// opaque annotations (spec §4.5).
func ParseHeader(cur *Cursor) (Header, error) {
	h := Header{Unknown: map[string]string{}}

	for {
		startLineno := cur.lineno
		line, ok := cur.NextLine()
		if !ok {
			return h, nil
		}

		if IsRule(line) {
			// Put the rule line back: header parsing terminates at the
			// first rule line (spec §4.5).
			cur.lineno = startLineno
			return h, nil
		}

		if IsDirective(line) {
			// Directives are not header lines; leave them for the
			// directive interpreter and stop header parsing here too,
			// since a directive can appear before the first rule.
			cur.lineno = startLineno
			return h, nil
		}

		key, value, ok := parseHeaderLine(line)
		if !ok {
			continue // plain comment, not a header line
		}

		if setter, known := knownHeaderKeys[strings.ToLower(key)]; known {
			if err := setter(&h, value); err != nil {
				return h, fmt.Errorf("filterlist: header %q: %w", key, err)
			}
		} else {
			h.Unknown[key] = value
		}
	}
}

// parseHeaderLine recognizes "! Key: Value" (single ASCII space after the
// colon). Lines not matching this exact shape are plain comments.
func parseHeaderLine(line string) (key, value string, ok bool) {
	if len(line) == 0 || line[0] != NonRuleMarker {
		return "", "", false
	}
	rest := strings.TrimPrefix(line, "!")
	rest = strings.TrimPrefix(rest, " ")

	colon := strings.Index(rest, ":")
	if colon < 0 {
		return "", "", false
	}

	k := rest[:colon]
	if k == "" || strings.ContainsAny(k, " ") {
		return "", "", false
	}

	after := rest[colon+1:]
	if !strings.HasPrefix(after, " ") {
		return "", "", false
	}
	return k, strings.TrimPrefix(after, " "), true
}

func parseTimeUpdated(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized TimeUpdated value %q", v)
}

func parseExpires(v string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	fields := strings.Fields(v)
	if len(fields) != 2 {
		return 0, fmt.Errorf("unrecognized Expires value %q", v)
	}

	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized Expires value %q", v)
	}

	unit := strings.TrimSuffix(strings.ToLower(fields[1]), "s")
	switch unit {
	case "hour":
		return time.Duration(n) * time.Hour, nil
	case "day":
		return time.Duration(n) * 24 * time.Hour, nil
	case "minute":
		return time.Duration(n) * time.Minute, nil
	case "second":
		return time.Duration(n) * time.Second, nil
	default:
		return 0, fmt.Errorf("unrecognized Expires unit %q", fields[1])
	}
}
