// Package coordinator implements the update cycle state machine (C12,
// spec §4.12): it selects stale filters, orchestrates fetch→parse→diff→
// commit for each, and preserves per-filter user state across the cycle.
package coordinator

import "github.com/AdguardTeam/FilterListManager/internal/domain/entity"

// UpdateResult is returned from one cycle: which filters changed, which
// were already current, and which failed with what error kind (spec §4.12,
// §7: per-filter errors do not poison other filters).
type UpdateResult struct {
	Updated   []entity.FilterID
	Unchanged []entity.FilterID
	Errors    map[entity.FilterID]error
}

func newUpdateResult() *UpdateResult {
	return &UpdateResult{Errors: make(map[entity.FilterID]error)}
}
