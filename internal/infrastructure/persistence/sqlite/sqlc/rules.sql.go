package sqlc

import "context"

const selectRulesByFilterID = `SELECT filter_id, rules_text, disabled_text FROM rules_list WHERE filter_id = ?`

// SelectRulesByFilterID returns one filter's rule body, or sql.ErrNoRows.
func (q *Queries) SelectRulesByFilterID(ctx context.Context, filterID int64) (RulesList, error) {
	var r RulesList
	err := q.db.QueryRowContext(ctx, selectRulesByFilterID, filterID).Scan(&r.FilterID, &r.RulesText, &r.DisabledText)
	return r, err
}

const upsertRules = `INSERT INTO rules_list (filter_id, rules_text, disabled_text) VALUES (?, ?, ?)
	ON CONFLICT(filter_id) DO UPDATE SET rules_text = excluded.rules_text, disabled_text = excluded.disabled_text`

// UpsertRules inserts or replaces one filter's rule body.
func (q *Queries) UpsertRules(ctx context.Context, r RulesList) error {
	_, err := q.db.ExecContext(ctx, upsertRules, r.FilterID, r.RulesText, r.DisabledText)
	return err
}

const selectFilterInnerFlags = `SELECT filter_id, is_user_title, is_user_description FROM filter_inner_flag WHERE filter_id = ?`

// SelectFilterInnerFlags returns one filter's user-override flags.
func (q *Queries) SelectFilterInnerFlags(ctx context.Context, filterID int64) (FilterInnerFlag, error) {
	var f FilterInnerFlag
	err := q.db.QueryRowContext(ctx, selectFilterInnerFlags, filterID).Scan(&f.FilterID, &f.IsUserTitle, &f.IsUserDescription)
	return f, err
}

const upsertFilterInnerFlags = `INSERT INTO filter_inner_flag (filter_id, is_user_title, is_user_description)
	VALUES (?, ?, ?)
	ON CONFLICT(filter_id) DO UPDATE SET is_user_title = excluded.is_user_title, is_user_description = excluded.is_user_description`

// UpsertFilterInnerFlags inserts or replaces one filter's override flags.
func (q *Queries) UpsertFilterInnerFlags(ctx context.Context, f FilterInnerFlag) error {
	_, err := q.db.ExecContext(ctx, upsertFilterInnerFlags, f.FilterID, f.IsUserTitle, f.IsUserDescription)
	return err
}

// SelectRulesTextByFilterIDs returns raw rule bodies for the filter ids
// named by the caller-built IN (...) query; line counting happens in Go
// (spec §9 favors small pure functions over spreading logic into SQL).
func (q *Queries) SelectRulesTextByFilterIDs(ctx context.Context, query string, args []any) ([]RulesList, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RulesList
	for rows.Next() {
		var r RulesList
		if err := rows.Scan(&r.FilterID, &r.RulesText, &r.DisabledText); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
