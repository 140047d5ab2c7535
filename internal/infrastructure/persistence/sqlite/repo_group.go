package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
)

type groupRepo struct {
	queries *sqlc.Queries
}

// NewFilterGroupRepository builds a repository.FilterGroupRepository over db.
func NewFilterGroupRepository(db sqlc.DBTX) repository.FilterGroupRepository {
	return &groupRepo{queries: sqlc.New(db)}
}

func (r *groupRepo) SelectAll(ctx context.Context) ([]entity.FilterGroup, error) {
	rows, err := r.queries.SelectAllGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select all groups: %w", err)
	}
	out := make([]entity.FilterGroup, len(rows))
	for i, row := range rows {
		out[i] = entity.FilterGroup{ID: entity.GroupID(row.ID), Name: row.Name, DisplayNumber: int32(row.DisplayNumber)}
	}
	return out, nil
}

// SelectLocalised resolves each group's name through the locale fallback
// chain lang_REGION -> lang -> base row name (spec §4.9, §9): the base
// language is computed here, in plain Go, and passed to SQL as a second
// fallback join rather than expressed as SQL logic itself.
func (r *groupRepo) SelectLocalised(ctx context.Context, locale string) ([]entity.FilterGroup, error) {
	baseLang, _, _ := strings.Cut(locale, "_")

	rows, err := r.queries.SelectGroupsLocalised(ctx, locale, baseLang)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select localised groups: %w", err)
	}
	out := make([]entity.FilterGroup, len(rows))
	for i, row := range rows {
		out[i] = entity.FilterGroup{ID: entity.GroupID(row.ID), Name: row.Name, DisplayNumber: int32(row.DisplayNumber)}
	}
	return out, nil
}

func (r *groupRepo) UpsertMany(ctx context.Context, groups []entity.FilterGroup) error {
	for _, g := range groups {
		row := sqlc.FilterGroup{ID: int64(g.ID), Name: g.Name, DisplayNumber: int64(g.DisplayNumber)}
		if err := r.queries.UpsertGroup(ctx, row); err != nil {
			return fmt.Errorf("sqlite: upsert group %d: %w", g.ID, err)
		}
	}
	return nil
}

// DeleteAbsent removes index-originating groups no longer present in
// keepIDs. Group 0 (reserved for custom filters, see migration 0001) is
// never deleted: it has no counterpart in the remote index, so it would
// always look "absent" there.
func (r *groupRepo) DeleteAbsent(ctx context.Context, keepIDs []entity.GroupID) error {
	if len(keepIDs) == 0 {
		if err := r.queries.DeleteGroupsAbsent(ctx, "DELETE FROM filter_group WHERE id > 0", nil); err != nil {
			return fmt.Errorf("sqlite: delete absent groups: %w", err)
		}
		return nil
	}

	raw := make([]int64, len(keepIDs))
	for i, id := range keepIDs {
		raw[i] = int64(id)
	}
	query := fmt.Sprintf("DELETE FROM filter_group WHERE id > 0 AND id NOT IN (%s)", placeholders(len(raw)))
	if err := r.queries.DeleteGroupsAbsent(ctx, query, int64Args(raw)); err != nil {
		return fmt.Errorf("sqlite: delete absent groups: %w", err)
	}
	return nil
}
