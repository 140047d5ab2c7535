// Package usecase implements the host-facing operations spec §6 names
// abstractly, wiring the repository and coordinator layers together behind
// one Service. Each method is the Go shape of one FFI-boundary operation;
// the FFI boundary itself remains an external collaborator (Non-goal, §1).
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/AdguardTeam/FilterListManager/internal/application/port"
	"github.com/AdguardTeam/FilterListManager/internal/coordinator"
	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/fetch"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

// Service bundles the repositories and coordinator a host needs to drive
// every operation in spec §6. All fields are required; Service does not own
// a transaction itself beyond what each method delegates to TxManager.
type Service struct {
	Filters     repository.FilterRepository
	Groups      repository.FilterGroupRepository
	Tags        repository.FilterTagRepository
	Locales     repository.FilterLocaleRepository
	Rules       repository.RulesListRepository
	InnerFlags  repository.FilterInnerFlagsRepository
	Metadata    repository.MetadataRepository
	Coordinator *coordinator.Coordinator
	Fetcher     *fetch.Fetcher
	Locale      string
}

// GetAllGroups returns every filter group, with names resolved through the
// locale fallback chain (spec §6: get_all_groups).
func (s *Service) GetAllGroups(ctx context.Context, locale string) ([]entity.FilterGroup, error) {
	if locale == "" {
		locale = s.Locale
	}
	return s.Groups.SelectLocalised(ctx, locale)
}

// GetAllTags returns every filter tag (spec §6: get_all_tags). Tags are not
// locale-resolved (SPEC_FULL.md supplemented features).
func (s *Service) GetAllTags(ctx context.Context) ([]entity.FilterTag, error) {
	return s.Tags.SelectAll(ctx)
}

// GetFullFilterListByID returns a filter's metadata plus its rule text, or
// nil if no such filter exists (spec §6: get_full_filter_list_by_id).
func (s *Service) GetFullFilterListByID(ctx context.Context, id entity.FilterID, locale string) (*port.FullFilterList, error) {
	f, err := s.Filters.SelectByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get filter %d: %w", id, err)
	}
	if f == nil {
		return nil, nil
	}

	rl, err := s.Rules.SelectByFilterID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get rules for filter %d: %w", id, err)
	}

	result := port.FullFilterList{Filter: *f}
	if rl != nil {
		result.Rules = entity.FilterListRules{
			FilterID:      id,
			Rules:         rl.Rules(),
			DisabledRules: rl.DisabledRules(),
		}
	} else {
		result.Rules = entity.FilterListRules{FilterID: id}
	}
	return &result, nil
}

// GetActiveRulesInfo returns the rule-count summary for one filter
// (SUPPLEMENTED FEATURES: active_rules_info).
func (s *Service) GetActiveRulesInfo(ctx context.Context, id entity.FilterID) (*entity.ActiveRulesInfo, error) {
	return s.Rules.SelectActiveRulesInfo(ctx, id)
}

// GetRulesCountByFilter is the bulk variant of GetActiveRulesInfo
// (SUPPLEMENTED FEATURES: rules_count_by_filter).
func (s *Service) GetRulesCountByFilter(ctx context.Context, ids []entity.FilterID) ([]entity.RulesCountByFilter, error) {
	return s.Rules.SelectRulesCountByFilter(ctx, ids)
}

// SaveRulesToFilterList persists a user's edited rule set for one filter.
// The repository enforces disabled_rules ⊆ rules on write (spec §3, §6:
// save_rules_to_filter_list).
func (s *Service) SaveRulesToFilterList(ctx context.Context, filterID entity.FilterID, rules, disabledRules []string) error {
	rl := entity.RulesList{
		FilterID:     filterID,
		RulesText:    joinRuleLines(rules),
		DisabledText: joinRuleLines(disabledRules),
	}
	return s.Rules.Upsert(ctx, rl)
}

// UpdateFilters runs one update cycle across every stale, enabled filter
// (spec §6: update_filters).
func (s *Service) UpdateFilters(ctx context.Context) (*coordinator.UpdateResult, error) {
	return s.Coordinator.Run(ctx)
}

// InstallCustomFilterList allocates a custom filter id and stores the new
// filter enabled, with ExpiresSeconds 0, plus inner flags marking any
// caller-supplied title or description. It does not fetch req.URL and stores
// no rules; the filter's rules arrive only through a later update cycle,
// which refreshes custom filters whose URL has a web scheme.
func (s *Service) InstallCustomFilterList(ctx context.Context, req port.InstallCustomFilterListRequest) (entity.FilterID, error) {
	log := logging.FromContext(ctx)

	id, err := s.Metadata.AllocateCustomFilterID(ctx)
	if err != nil {
		return 0, fmt.Errorf("usecase: allocate custom filter id: %w", err)
	}

	f := entity.Filter{
		ID:             id,
		GroupID:        entity.GroupID(0), // reserved custom-filters group, see migration 0001
		Title:          req.Title,
		Description:    req.Description,
		DownloadURL:    req.URL,
		Version:        "",
		TimeUpdated:    time.Now().UTC(),
		ExpiresSeconds: 0,
		IsEnabled:      true,
		IsTrusted:      req.Trusted,
	}

	if err := s.Filters.Upsert(ctx, f); err != nil {
		return 0, fmt.Errorf("usecase: install custom filter: %w", err)
	}

	if req.Title != "" || req.Description != "" {
		if err := s.InnerFlags.Upsert(ctx, entity.FilterInnerFlags{
			FilterID:          id,
			IsUserTitle:       req.Title != "",
			IsUserDescription: req.Description != "",
		}); err != nil {
			return 0, fmt.Errorf("usecase: save custom filter flags: %w", err)
		}
	}

	log.Info().Int64("filter_id", int64(id)).Str("url", req.URL).Msg("installed custom filter list")
	return id, nil
}

// EnableFilterLists flips is_enabled for the given filters in one statement
// (spec §6: enable_filter_lists).
func (s *Service) EnableFilterLists(ctx context.Context, ids []entity.FilterID, enabled bool) error {
	return s.Filters.UpdateEnabled(ctx, ids, enabled)
}

func joinRuleLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
