package sqlite

import (
	"context"
	"fmt"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
)

type groupLocalisationRepo struct{ queries *sqlc.Queries }

// NewFilterGroupLocalisationRepository builds a
// repository.FilterGroupLocalisationRepository over db.
func NewFilterGroupLocalisationRepository(db sqlc.DBTX) repository.FilterGroupLocalisationRepository {
	return &groupLocalisationRepo{queries: sqlc.New(db)}
}

func (r *groupLocalisationRepo) UpsertMany(ctx context.Context, rows []entity.FilterGroupLocalisation) error {
	for _, row := range rows {
		err := r.queries.UpsertGroupLocalisation(ctx, sqlc.FilterGroupLocalisation{
			GroupID: int64(row.GroupID), Lang: row.Lang, Name: row.Name,
		})
		if err != nil {
			return fmt.Errorf("sqlite: upsert group localisation (%d, %s): %w", row.GroupID, row.Lang, err)
		}
	}
	return nil
}

type tagLocalisationRepo struct{ queries *sqlc.Queries }

// NewFilterTagLocalisationRepository builds a
// repository.FilterTagLocalisationRepository over db.
func NewFilterTagLocalisationRepository(db sqlc.DBTX) repository.FilterTagLocalisationRepository {
	return &tagLocalisationRepo{queries: sqlc.New(db)}
}

func (r *tagLocalisationRepo) UpsertMany(ctx context.Context, rows []entity.FilterTagLocalisation) error {
	for _, row := range rows {
		err := r.queries.UpsertTagLocalisation(ctx, sqlc.FilterTagLocalisation{
			TagID: int64(row.TagID), Lang: row.Lang, Name: row.Name, Description: row.Description,
		})
		if err != nil {
			return fmt.Errorf("sqlite: upsert tag localisation (%d, %s): %w", row.TagID, row.Lang, err)
		}
	}
	return nil
}

type filterLocalisationRepo struct{ queries *sqlc.Queries }

// NewFilterLocalisationRepository builds a
// repository.FilterLocalisationRepository over db.
func NewFilterLocalisationRepository(db sqlc.DBTX) repository.FilterLocalisationRepository {
	return &filterLocalisationRepo{queries: sqlc.New(db)}
}

func (r *filterLocalisationRepo) UpsertMany(ctx context.Context, rows []entity.FilterLocalisation) error {
	for _, row := range rows {
		err := r.queries.UpsertFilterLocalisation(ctx, sqlc.FilterLocalisation{
			FilterID: int64(row.FilterID), Lang: row.Lang, Name: row.Name, Description: row.Description,
		})
		if err != nil {
			return fmt.Errorf("sqlite: upsert filter localisation (%d, %s): %w", row.FilterID, row.Lang, err)
		}
	}
	return nil
}
