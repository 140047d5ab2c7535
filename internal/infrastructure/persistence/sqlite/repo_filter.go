package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
)

type filterRepo struct {
	queries *sqlc.Queries
}

// NewFilterRepository builds a repository.FilterRepository over db (a
// *sql.DB or a *sql.Tx), following the teacher's repo-wraps-sqlc.Queries
// convention.
func NewFilterRepository(db sqlc.DBTX) repository.FilterRepository {
	return &filterRepo{queries: sqlc.New(db)}
}

func filterFromRow(row sqlc.Filter) entity.Filter {
	return entity.Filter{
		ID:              entity.FilterID(row.ID),
		GroupID:         entity.GroupID(row.GroupID),
		Title:           row.Title,
		Description:     row.Description,
		HomepageURL:     row.HomepageURL,
		LicenseURL:      row.LicenseURL,
		Checksum:        row.Checksum,
		Version:         row.Version,
		TimeUpdated:     time.Unix(row.TimeUpdated, 0).UTC(),
		ExpiresSeconds:  row.ExpiresSeconds,
		DownloadURL:     row.DownloadURL,
		SubscriptionURL: row.SubscriptionURL,
		DiffPath:        row.DiffPath,
		IsEnabled:       row.IsEnabled,
		IsTrusted:       row.IsTrusted,
	}
}

func filterToRow(f entity.Filter) sqlc.Filter {
	return sqlc.Filter{
		ID:              int64(f.ID),
		GroupID:         int64(f.GroupID),
		Title:           f.Title,
		Description:     f.Description,
		HomepageURL:     f.HomepageURL,
		LicenseURL:      f.LicenseURL,
		Checksum:        f.Checksum,
		Version:         f.Version,
		TimeUpdated:     f.TimeUpdated.UTC().Unix(),
		ExpiresSeconds:  f.ExpiresSeconds,
		DownloadURL:     f.DownloadURL,
		SubscriptionURL: f.SubscriptionURL,
		DiffPath:        f.DiffPath,
		IsEnabled:       f.IsEnabled,
		IsTrusted:       f.IsTrusted,
	}
}

func (r *filterRepo) SelectAll(ctx context.Context) ([]entity.Filter, error) {
	rows, err := r.queries.SelectAllFilters(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select all filters: %w", err)
	}
	out := make([]entity.Filter, len(rows))
	for i, row := range rows {
		out[i] = filterFromRow(row)
	}
	return out, nil
}

func (r *filterRepo) SelectEnabled(ctx context.Context) ([]entity.Filter, error) {
	rows, err := r.queries.SelectEnabledFilters(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select enabled filters: %w", err)
	}
	out := make([]entity.Filter, len(rows))
	for i, row := range rows {
		out[i] = filterFromRow(row)
	}
	return out, nil
}

func (r *filterRepo) SelectByID(ctx context.Context, id entity.FilterID) (*entity.Filter, error) {
	row, err := r.queries.SelectFilterByID(ctx, int64(id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: select filter %d: %w", id, err)
	}
	f := filterFromRow(row)
	return &f, nil
}

func (r *filterRepo) Upsert(ctx context.Context, f entity.Filter) error {
	if err := r.queries.UpsertFilter(ctx, filterToRow(f)); err != nil {
		return fmt.Errorf("sqlite: upsert filter %d: %w", f.ID, err)
	}
	return nil
}

func (r *filterRepo) UpdateEnabled(ctx context.Context, ids []entity.FilterID, enabled bool) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	query := fmt.Sprintf("UPDATE filter SET is_enabled = ? WHERE id IN (%s)", placeholders(len(raw)))
	args := append([]any{enabled}, int64Args(raw)...)
	if err := r.queries.SetFiltersEnabled(ctx, query, args); err != nil {
		return fmt.Errorf("sqlite: update enabled for %d filters: %w", len(ids), err)
	}
	return nil
}

func (r *filterRepo) DeleteByID(ctx context.Context, id entity.FilterID) error {
	if err := r.queries.DeleteFilterByID(ctx, int64(id)); err != nil {
		return fmt.Errorf("sqlite: delete filter %d: %w", id, err)
	}
	return nil
}

// missingIngestionsBeforeDelete is the consecutive-absence threshold spec §3
// Lifecycle names: "deleted when absent from two consecutive index
// ingestions", not the first ingestion that no longer lists them.
const missingIngestionsBeforeDelete = 2

// DeleteAbsent implements that debounce: it bumps missing_count for every
// index-originating filter (id below MinimumCustomFilterID, so custom
// filters are never touched) not present in keepIDs, then deletes whichever
// of those have now missed missingIngestionsBeforeDelete ingestions in a
// row. Upsert resets missing_count back to 0 the moment a filter reappears,
// so a single missed ingestion does not compound across unrelated gaps.
func (r *filterRepo) DeleteAbsent(ctx context.Context, keepIDs []entity.FilterID) error {
	raw := make([]int64, len(keepIDs))
	for i, id := range keepIDs {
		raw[i] = int64(id)
	}

	var markQuery string
	var markArgs []any
	if len(raw) == 0 {
		markQuery = "UPDATE filter SET missing_count = missing_count + 1 WHERE id < ?"
		markArgs = []any{int64(entity.MinimumCustomFilterID)}
	} else {
		markQuery = fmt.Sprintf("UPDATE filter SET missing_count = missing_count + 1 WHERE id < ? AND id NOT IN (%s)", placeholders(len(raw)))
		markArgs = append([]any{int64(entity.MinimumCustomFilterID)}, int64Args(raw)...)
	}
	if err := r.queries.MarkFiltersAbsent(ctx, markQuery, markArgs); err != nil {
		return fmt.Errorf("sqlite: mark absent filters: %w", err)
	}

	deleteQuery := "DELETE FROM filter WHERE id < ? AND missing_count >= ?"
	deleteArgs := []any{int64(entity.MinimumCustomFilterID), missingIngestionsBeforeDelete}
	if err := r.queries.DeleteFiltersAbsent(ctx, deleteQuery, deleteArgs); err != nil {
		return fmt.Errorf("sqlite: delete absent filters: %w", err)
	}
	return nil
}
