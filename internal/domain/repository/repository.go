// Package repository declares the typed, table-scoped access ports the
// storage layer implements (spec §4.9, C9). Every repository is connection-
// agnostic: callers hand the open *sql.Tx or *sql.DB (as a sqlc.DBTX) to the
// repository's constructor; the repository never owns or opens one itself.
package repository

import (
	"context"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
)

// FilterRepository provides typed access to the filter table.
type FilterRepository interface {
	SelectAll(ctx context.Context) ([]entity.Filter, error)
	SelectByID(ctx context.Context, id entity.FilterID) (*entity.Filter, error)
	SelectEnabled(ctx context.Context) ([]entity.Filter, error)
	Upsert(ctx context.Context, f entity.Filter) error
	UpdateEnabled(ctx context.Context, ids []entity.FilterID, enabled bool) error
	DeleteByID(ctx context.Context, id entity.FilterID) error
	DeleteAbsent(ctx context.Context, keepIDs []entity.FilterID) error
}

// FilterGroupRepository provides typed access to the filter_group table.
type FilterGroupRepository interface {
	SelectAll(ctx context.Context) ([]entity.FilterGroup, error)
	SelectLocalised(ctx context.Context, locale string) ([]entity.FilterGroup, error)
	UpsertMany(ctx context.Context, groups []entity.FilterGroup) error
	DeleteAbsent(ctx context.Context, keepIDs []entity.GroupID) error
}

// FilterTagRepository provides typed access to the filter_tag table.
type FilterTagRepository interface {
	SelectAll(ctx context.Context) ([]entity.FilterTag, error)
	UpsertMany(ctx context.Context, tags []entity.FilterTag) error
	DeleteAbsent(ctx context.Context, keepIDs []entity.TagID) error
	ReplaceFilterLinks(ctx context.Context, filterID entity.FilterID, tagIDs []entity.TagID) error
}

// FilterLocaleRepository provides typed access to the filter_locale table.
type FilterLocaleRepository interface {
	ReplaceFilterLinks(ctx context.Context, filterID entity.FilterID, langs []string) error
}

// FilterGroupLocalisationRepository provides typed access to group
// translations.
type FilterGroupLocalisationRepository interface {
	UpsertMany(ctx context.Context, rows []entity.FilterGroupLocalisation) error
}

// FilterTagLocalisationRepository provides typed access to tag translations.
type FilterTagLocalisationRepository interface {
	UpsertMany(ctx context.Context, rows []entity.FilterTagLocalisation) error
}

// FilterLocalisationRepository provides typed access to filter translations.
type FilterLocalisationRepository interface {
	UpsertMany(ctx context.Context, rows []entity.FilterLocalisation) error
}

// RulesListRepository provides typed access to the rules_list table.
type RulesListRepository interface {
	SelectByFilterID(ctx context.Context, id entity.FilterID) (*entity.RulesList, error)
	SelectRawByFilterID(ctx context.Context, id entity.FilterID) (*entity.FilterListRulesRaw, error)
	SelectActiveRulesInfo(ctx context.Context, id entity.FilterID) (*entity.ActiveRulesInfo, error)
	SelectRulesCountByFilter(ctx context.Context, ids []entity.FilterID) ([]entity.RulesCountByFilter, error)
	Upsert(ctx context.Context, rl entity.RulesList) error
}

// FilterInnerFlagsRepository provides typed access to the filter_inner_flag
// table.
type FilterInnerFlagsRepository interface {
	SelectByFilterID(ctx context.Context, id entity.FilterID) (*entity.FilterInnerFlags, error)
	Upsert(ctx context.Context, flags entity.FilterInnerFlags) error
}

// MetadataRepository provides typed access to the singleton metadata row.
type MetadataRepository interface {
	Get(ctx context.Context) (entity.DBMetadata, error)
	Set(ctx context.Context, m entity.DBMetadata) error
	AllocateCustomFilterID(ctx context.Context) (entity.FilterID, error)
}
