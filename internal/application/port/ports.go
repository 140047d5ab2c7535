// Package port declares the host-facing operation signatures spec §6 names
// abstractly (get_all_groups, save_rules_to_filter_list, ...). Each is a Go
// method on a use case struct in internal/application/usecase; this package
// only carries the shared request/response shapes those methods take, so a
// future FFI boundary can depend on shapes instead of on usecase internals.
package port

import "github.com/AdguardTeam/FilterListManager/internal/domain/entity"

// FullFilterList bundles a filter's metadata with its rule text, the shape
// get_full_filter_list_by_id returns (spec §6).
type FullFilterList struct {
	Filter entity.Filter
	Rules  entity.FilterListRules
}

// InstallCustomFilterListRequest carries install_custom_filter_list's
// arguments (spec §6); Title/Description are optional user overrides.
type InstallCustomFilterListRequest struct {
	URL         string
	Trusted     bool
	Title       string
	Description string
}
