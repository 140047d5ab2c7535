package entity

import "time"

// Filter is a single filter list subscription row (spec §3).
type Filter struct {
	ID              FilterID
	GroupID         GroupID
	Title           string
	Description     string
	HomepageURL     string
	LicenseURL      string
	Checksum        string
	Version         string
	TimeUpdated     time.Time
	ExpiresSeconds  int64
	DownloadURL     string
	SubscriptionURL string
	DiffPath        string
	IsEnabled       bool
	IsTrusted       bool
}

// IsCustom reports whether id falls in the reserved custom-filter range.
func (id FilterID) IsCustom() bool {
	return id >= MinimumCustomFilterID && id <= MaximumCustomFilterID
}

// FilterGroup is a named bucket of filters, ordered by DisplayNumber (spec §3).
type FilterGroup struct {
	ID            GroupID
	Name          string
	DisplayNumber int32
}

// FilterTag is a keyword attached to filters, e.g. "purpose:privacy" (spec §3).
type FilterTag struct {
	ID      TagID
	Keyword string
}

// FilterLocale records that a filter claims coverage of a language key.
type FilterLocale struct {
	FilterID FilterID
	Lang     string
}

// FilterInnerFlags tracks which user-facing fields have been manually
// overridden, so a re-ingestion of the remote index does not clobber them
// (spec §3, §4.8).
type FilterInnerFlags struct {
	FilterID          FilterID
	IsUserTitle       bool
	IsUserDescription bool
}
