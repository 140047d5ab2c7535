// Package entity holds the plain data types the core operates on: filters,
// their groups/tags/locales, rule bodies, and the housekeeping rows that let
// the store track schema version and custom-filter id allocation.
package entity

// FilterID identifies a filter row. Index-originating filters use small
// positive ids; custom (user-installed) filters are allocated from a high
// reserved range, counting down.
type FilterID int64

// GroupID identifies a FilterGroup row.
type GroupID int64

// TagID identifies a FilterTag row.
type TagID int64

const (
	// MinimumCustomFilterID is the lowest id a custom filter may receive.
	MinimumCustomFilterID FilterID = 1_000_000_000

	// MaximumCustomFilterID is the first id handed out to a custom filter;
	// subsequent allocations count down from here and are never reused.
	MaximumCustomFilterID FilterID = 1_999_999_999
)
