package sqlite

import (
	"context"
	"fmt"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
)

type metadataRepo struct {
	queries *sqlc.Queries
}

// NewMetadataRepository builds a repository.MetadataRepository over db.
func NewMetadataRepository(db sqlc.DBTX) repository.MetadataRepository {
	return &metadataRepo{queries: sqlc.New(db)}
}

func (r *metadataRepo) Get(ctx context.Context) (entity.DBMetadata, error) {
	row, err := r.queries.SelectMetadata(ctx)
	if err != nil {
		return entity.DBMetadata{}, fmt.Errorf("sqlite: select metadata: %w", err)
	}
	return entity.DBMetadata{Version: row.Version, CustomFilterIDCounter: entity.FilterID(row.CustomFilterIDCounter)}, nil
}

func (r *metadataRepo) Set(ctx context.Context, m entity.DBMetadata) error {
	row := sqlc.Metadata{Version: m.Version, CustomFilterIDCounter: int64(m.CustomFilterIDCounter)}
	if err := r.queries.UpdateMetadata(ctx, row); err != nil {
		return fmt.Errorf("sqlite: update metadata: %w", err)
	}
	return nil
}

// AllocateCustomFilterID atomically decrements and returns the next custom
// filter id, seeding the counter from MaximumCustomFilterID+1 on first use
// (spec §3 invariant 4, §8). Callers must invoke this within a transaction
// so the seed-then-decrement sequence is atomic under concurrent installs.
func (r *metadataRepo) AllocateCustomFilterID(ctx context.Context) (entity.FilterID, error) {
	current, err := r.queries.SelectMetadata(ctx)
	if err != nil {
		return 0, fmt.Errorf("sqlite: read metadata for allocation: %w", err)
	}

	if current.CustomFilterIDCounter == 0 {
		current.CustomFilterIDCounter = int64(entity.MaximumCustomFilterID) + 1
		if err := r.queries.UpdateMetadata(ctx, current); err != nil {
			return 0, fmt.Errorf("sqlite: seed custom filter counter: %w", err)
		}
	}

	next, err := r.queries.DecrementCustomFilterCounter(ctx)
	if err != nil {
		return 0, fmt.Errorf("sqlite: decrement custom filter counter: %w", err)
	}
	return entity.FilterID(next), nil
}
