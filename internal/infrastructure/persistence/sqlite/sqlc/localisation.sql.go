package sqlc

import "context"

const upsertGroupLocalisation = `INSERT INTO filter_group_localisation (group_id, lang, name) VALUES (?, ?, ?)
	ON CONFLICT(group_id, lang) DO UPDATE SET name = excluded.name`

// UpsertGroupLocalisation inserts or replaces one group translation row.
func (q *Queries) UpsertGroupLocalisation(ctx context.Context, r FilterGroupLocalisation) error {
	_, err := q.db.ExecContext(ctx, upsertGroupLocalisation, r.GroupID, r.Lang, r.Name)
	return err
}

const upsertTagLocalisation = `INSERT INTO filter_tag_localisation (tag_id, lang, name, description) VALUES (?, ?, ?, ?)
	ON CONFLICT(tag_id, lang) DO UPDATE SET name = excluded.name, description = excluded.description`

// UpsertTagLocalisation inserts or replaces one tag translation row.
func (q *Queries) UpsertTagLocalisation(ctx context.Context, r FilterTagLocalisation) error {
	_, err := q.db.ExecContext(ctx, upsertTagLocalisation, r.TagID, r.Lang, r.Name, r.Description)
	return err
}

const upsertFilterLocalisation = `INSERT INTO filter_localisation (filter_id, lang, name, description) VALUES (?, ?, ?, ?)
	ON CONFLICT(filter_id, lang) DO UPDATE SET name = excluded.name, description = excluded.description`

// UpsertFilterLocalisation inserts or replaces one filter translation row.
func (q *Queries) UpsertFilterLocalisation(ctx context.Context, r FilterLocalisation) error {
	_, err := q.db.ExecContext(ctx, upsertFilterLocalisation, r.FilterID, r.Lang, r.Name, r.Description)
	return err
}
