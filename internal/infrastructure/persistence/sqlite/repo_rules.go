package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
)

type rulesRepo struct {
	queries *sqlc.Queries
}

// NewRulesListRepository builds a repository.RulesListRepository over db.
func NewRulesListRepository(db sqlc.DBTX) repository.RulesListRepository {
	return &rulesRepo{queries: sqlc.New(db)}
}

func (r *rulesRepo) SelectByFilterID(ctx context.Context, id entity.FilterID) (*entity.RulesList, error) {
	row, err := r.queries.SelectRulesByFilterID(ctx, int64(id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: select rules for filter %d: %w", id, err)
	}
	return &entity.RulesList{FilterID: id, RulesText: row.RulesText, DisabledText: row.DisabledText}, nil
}

func (r *rulesRepo) SelectRawByFilterID(ctx context.Context, id entity.FilterID) (*entity.FilterListRulesRaw, error) {
	row, err := r.queries.SelectRulesByFilterID(ctx, int64(id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: select raw rules for filter %d: %w", id, err)
	}
	return &entity.FilterListRulesRaw{FilterID: id, RulesText: row.RulesText, DisabledText: row.DisabledText}, nil
}

func (r *rulesRepo) SelectActiveRulesInfo(ctx context.Context, id entity.FilterID) (*entity.ActiveRulesInfo, error) {
	row, err := r.queries.SelectRulesByFilterID(ctx, int64(id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: select active rules info for filter %d: %w", id, err)
	}
	raw := entity.ActiveRulesInfoRaw{FilterID: id, RulesText: row.RulesText, DisabledText: row.DisabledText}
	info := raw.Count()
	return &info, nil
}

func (r *rulesRepo) SelectRulesCountByFilter(ctx context.Context, ids []entity.FilterID) ([]entity.RulesCountByFilter, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	query := fmt.Sprintf("SELECT filter_id, rules_text, disabled_text FROM rules_list WHERE filter_id IN (%s)", placeholders(len(raw)))

	rows, err := r.queries.SelectRulesTextByFilterIDs(ctx, query, int64Args(raw))
	if err != nil {
		return nil, fmt.Errorf("sqlite: select rules count by filter: %w", err)
	}

	out := make([]entity.RulesCountByFilter, len(rows))
	for i, row := range rows {
		rl := entity.RulesList{RulesText: row.RulesText}
		out[i] = entity.RulesCountByFilter{FilterID: entity.FilterID(row.FilterID), RulesCount: len(rl.Rules())}
	}
	return out, nil
}

func (r *rulesRepo) Upsert(ctx context.Context, rl entity.RulesList) error {
	reconciled := rl.ReconcileDisabled()
	row := sqlc.RulesList{FilterID: int64(reconciled.FilterID), RulesText: reconciled.RulesText, DisabledText: reconciled.DisabledText}
	if err := r.queries.UpsertRules(ctx, row); err != nil {
		return fmt.Errorf("sqlite: upsert rules for filter %d: %w", rl.FilterID, err)
	}
	return nil
}

type flagsRepo struct {
	queries *sqlc.Queries
}

// NewFilterInnerFlagsRepository builds a repository.FilterInnerFlagsRepository over db.
func NewFilterInnerFlagsRepository(db sqlc.DBTX) repository.FilterInnerFlagsRepository {
	return &flagsRepo{queries: sqlc.New(db)}
}

func (r *flagsRepo) SelectByFilterID(ctx context.Context, id entity.FilterID) (*entity.FilterInnerFlags, error) {
	row, err := r.queries.SelectFilterInnerFlags(ctx, int64(id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: select inner flags for filter %d: %w", id, err)
	}
	return &entity.FilterInnerFlags{FilterID: id, IsUserTitle: row.IsUserTitle, IsUserDescription: row.IsUserDescription}, nil
}

func (r *flagsRepo) Upsert(ctx context.Context, flags entity.FilterInnerFlags) error {
	row := sqlc.FilterInnerFlag{FilterID: int64(flags.FilterID), IsUserTitle: flags.IsUserTitle, IsUserDescription: flags.IsUserDescription}
	if err := r.queries.UpsertFilterInnerFlags(ctx, row); err != nil {
		return fmt.Errorf("sqlite: upsert inner flags for filter %d: %w", flags.FilterID, err)
	}
	return nil
}
