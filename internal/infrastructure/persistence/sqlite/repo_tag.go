package sqlite

import (
	"context"
	"fmt"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
)

type tagRepo struct {
	queries *sqlc.Queries
}

// NewFilterTagRepository builds a repository.FilterTagRepository over db.
func NewFilterTagRepository(db sqlc.DBTX) repository.FilterTagRepository {
	return &tagRepo{queries: sqlc.New(db)}
}

func (r *tagRepo) SelectAll(ctx context.Context) ([]entity.FilterTag, error) {
	rows, err := r.queries.SelectAllTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select all tags: %w", err)
	}
	out := make([]entity.FilterTag, len(rows))
	for i, row := range rows {
		out[i] = entity.FilterTag{ID: entity.TagID(row.ID), Keyword: row.Keyword}
	}
	return out, nil
}

func (r *tagRepo) UpsertMany(ctx context.Context, tags []entity.FilterTag) error {
	for _, t := range tags {
		row := sqlc.FilterTag{ID: int64(t.ID), Keyword: t.Keyword}
		if err := r.queries.UpsertTag(ctx, row); err != nil {
			return fmt.Errorf("sqlite: upsert tag %d: %w", t.ID, err)
		}
	}
	return nil
}

func (r *tagRepo) DeleteAbsent(ctx context.Context, keepIDs []entity.TagID) error {
	if len(keepIDs) == 0 {
		if err := r.queries.DeleteTagsAbsent(ctx, "DELETE FROM filter_tag", nil); err != nil {
			return fmt.Errorf("sqlite: delete absent tags: %w", err)
		}
		return nil
	}

	raw := make([]int64, len(keepIDs))
	for i, id := range keepIDs {
		raw[i] = int64(id)
	}
	query := fmt.Sprintf("DELETE FROM filter_tag WHERE id NOT IN (%s)", placeholders(len(raw)))
	if err := r.queries.DeleteTagsAbsent(ctx, query, int64Args(raw)); err != nil {
		return fmt.Errorf("sqlite: delete absent tags: %w", err)
	}
	return nil
}

func (r *tagRepo) ReplaceFilterLinks(ctx context.Context, filterID entity.FilterID, tagIDs []entity.TagID) error {
	if err := r.queries.DeleteFilterTagLinks(ctx, int64(filterID)); err != nil {
		return fmt.Errorf("sqlite: clear tag links for filter %d: %w", filterID, err)
	}
	for _, tagID := range tagIDs {
		if err := r.queries.InsertFilterTagLink(ctx, int64(filterID), int64(tagID)); err != nil {
			return fmt.Errorf("sqlite: link filter %d to tag %d: %w", filterID, tagID, err)
		}
	}
	return nil
}

type localeRepo struct {
	queries *sqlc.Queries
}

// NewFilterLocaleRepository builds a repository.FilterLocaleRepository over db.
func NewFilterLocaleRepository(db sqlc.DBTX) repository.FilterLocaleRepository {
	return &localeRepo{queries: sqlc.New(db)}
}

func (r *localeRepo) ReplaceFilterLinks(ctx context.Context, filterID entity.FilterID, langs []string) error {
	if err := r.queries.DeleteFilterLocaleLinks(ctx, int64(filterID)); err != nil {
		return fmt.Errorf("sqlite: clear locale links for filter %d: %w", filterID, err)
	}
	for _, lang := range langs {
		if err := r.queries.InsertFilterLocaleLink(ctx, int64(filterID), lang); err != nil {
			return fmt.Errorf("sqlite: link filter %d to locale %s: %w", filterID, lang, err)
		}
	}
	return nil
}
