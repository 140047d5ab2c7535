package entity

import "strings"

// RulesList holds a filter's current rule body and the subset of it the
// user has disabled. Both are stored as newline-joined strings; the
// invariant disabled_rules ⊆ rules (as trimmed-line multisets) must hold
// after every commit (spec §3, §8).
type RulesList struct {
	FilterID     FilterID
	RulesText    string
	DisabledText string
}

// Rules splits RulesText into trimmed, non-empty lines.
func (r RulesList) Rules() []string { return splitLines(r.RulesText) }

// DisabledRules splits DisabledText into trimmed, non-empty lines.
func (r RulesList) DisabledRules() []string { return splitLines(r.DisabledText) }

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ReconcileDisabled drops any disabled line no longer present in rules,
// enforcing the disabled_rules ⊆ rules invariant (spec §3, §8). It does not
// mutate r; callers persist the returned RulesList.
func (r RulesList) ReconcileDisabled() RulesList {
	present := make(map[string]struct{}, len(r.Rules()))
	for _, line := range r.Rules() {
		present[line] = struct{}{}
	}

	kept := make([]string, 0, len(r.DisabledRules()))
	for _, line := range r.DisabledRules() {
		if _, ok := present[line]; ok {
			kept = append(kept, line)
		}
	}

	r.DisabledText = strings.Join(kept, "\n")
	return r
}

// FilterListRules is the hydrated (filter_id, rule lines) pair returned to a
// host when it asks for one filter's full body.
type FilterListRules struct {
	FilterID      FilterID
	Rules         []string
	DisabledRules []string
}

// FilterListRulesRaw is the same pair before line-splitting, as stored.
type FilterListRulesRaw struct {
	FilterID     FilterID
	RulesText    string
	DisabledText string
}

// ActiveRulesInfo is a per-filter read model summarizing rule counts
// without shipping the full rule text (supplemented from the original
// active_rules_info model).
type ActiveRulesInfo struct {
	FilterID      FilterID
	RulesCount    int
	EnabledCount  int
	DisabledCount int
}

// ActiveRulesInfoRaw is ActiveRulesInfo before counting, carrying the raw
// text so the caller can choose when to pay the split cost.
type ActiveRulesInfoRaw struct {
	FilterID     FilterID
	RulesText    string
	DisabledText string
}

// Count derives an ActiveRulesInfo from the raw text.
func (r ActiveRulesInfoRaw) Count() ActiveRulesInfo {
	rl := RulesList{FilterID: r.FilterID, RulesText: r.RulesText, DisabledText: r.DisabledText}
	total := len(rl.Rules())
	disabled := len(rl.DisabledRules())
	return ActiveRulesInfo{
		FilterID:      r.FilterID,
		RulesCount:    total,
		DisabledCount: disabled,
		EnabledCount:  total - disabled,
	}
}

// RulesCountByFilter is the bulk variant of ActiveRulesInfo, for host UIs
// listing many filters at once (supplemented from rules_count_by_filter.rs).
type RulesCountByFilter struct {
	FilterID   FilterID
	RulesCount int
}
