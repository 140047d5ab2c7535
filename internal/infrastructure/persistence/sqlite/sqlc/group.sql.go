package sqlc

import "context"

const selectAllGroups = `SELECT id, name, display_number FROM filter_group WHERE id > 0 ORDER BY display_number, name`

// SelectAllGroups returns every group row except the reserved group 0, in
// display order.
func (q *Queries) SelectAllGroups(ctx context.Context) ([]FilterGroup, error) {
	rows, err := q.db.QueryContext(ctx, selectAllGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FilterGroup
	for rows.Next() {
		var g FilterGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.DisplayNumber); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// selectGroupsLocalised resolves each group's name through the locale
// fallback chain lang_REGION -> lang -> base row name, via COALESCE over two
// LEFT JOINs (spec §4.9, §9).
const selectGroupsLocalised = `
SELECT g.id, COALESCE(exact.name, base.name, g.name) AS name, g.display_number
FROM filter_group g
LEFT JOIN filter_group_localisation exact ON exact.group_id = g.id AND exact.lang = ?
LEFT JOIN filter_group_localisation base ON base.group_id = g.id AND base.lang = ?
WHERE g.id > 0
ORDER BY g.display_number, name`

// SelectGroupsLocalised returns every group row except the reserved group 0
// with its name resolved for
// locale, falling back to the base language and then the stored name.
func (q *Queries) SelectGroupsLocalised(ctx context.Context, locale, baseLang string) ([]FilterGroupLocalised, error) {
	rows, err := q.db.QueryContext(ctx, selectGroupsLocalised, locale, baseLang)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FilterGroupLocalised
	for rows.Next() {
		var g FilterGroupLocalised
		if err := rows.Scan(&g.ID, &g.Name, &g.DisplayNumber); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

const upsertGroup = `INSERT INTO filter_group (id, name, display_number) VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET name = excluded.name, display_number = excluded.display_number`

// UpsertGroup inserts or replaces one group row.
func (q *Queries) UpsertGroup(ctx context.Context, g FilterGroup) error {
	_, err := q.db.ExecContext(ctx, upsertGroup, g.ID, g.Name, g.DisplayNumber)
	return err
}

// DeleteGroupsAbsent removes group rows not present in the query's id set.
func (q *Queries) DeleteGroupsAbsent(ctx context.Context, query string, args []any) error {
	_, err := q.db.ExecContext(ctx, query, args...)
	return err
}
