// Package index consumes the remote filter index (filters.json,
// filters_i18n.json) and reconciles it into storage (C8, spec §4.8, §6).
package index

// Index is the decoded form of filters.json.
type Index struct {
	Groups  []GroupEntry  `json:"groups"`
	Filters []FilterEntry `json:"filters"`
	Tags    []TagEntry    `json:"tags"`
}

// GroupEntry is one element of Index.Groups.
type GroupEntry struct {
	GroupID       int64  `json:"groupId"`
	GroupName     string `json:"groupName"`
	DisplayNumber int32  `json:"displayNumber"`
}

// FilterEntry is one element of Index.Filters.
type FilterEntry struct {
	FilterID        int64   `json:"filterId"`
	GroupID         int64   `json:"groupId"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	HomepageURL     string  `json:"homepage"`
	LicenseURL      string  `json:"license"`
	DownloadURL     string  `json:"downloadUrl"`
	SubscriptionURL string  `json:"subscriptionUrl"`
	Version         string  `json:"version"`
	TimeUpdated     string  `json:"timeUpdated"`
	ExpiresSeconds  int64   `json:"expires"`
	DiffPath        string  `json:"diffPath"`
	Trusted         bool    `json:"trusted"`
	TagIDs          []int64 `json:"tags"`
	Languages       []string `json:"languages"`
}

// TagEntry is one element of Index.Tags.
type TagEntry struct {
	TagID   int64  `json:"tagId"`
	Keyword string `json:"keyword"`
}

// IndexI18N is the decoded form of filters_i18n.json.
type IndexI18N struct {
	Groups  map[string]map[string]LanguageMeta `json:"groups"`
	Filters map[string]map[string]LanguageMeta `json:"filters"`
	Tags    map[string]map[string]LanguageMeta `json:"tags"`
}

// LanguageMeta is one entity's translated name/description for one
// language key (spec §6, supplemented from index_localisation_entities.rs).
type LanguageMeta struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}
