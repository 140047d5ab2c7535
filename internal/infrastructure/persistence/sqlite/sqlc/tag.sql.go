package sqlc

import "context"

const selectAllTags = `SELECT id, keyword FROM filter_tag ORDER BY keyword`

// SelectAllTags returns every tag row.
func (q *Queries) SelectAllTags(ctx context.Context) ([]FilterTag, error) {
	rows, err := q.db.QueryContext(ctx, selectAllTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FilterTag
	for rows.Next() {
		var t FilterTag
		if err := rows.Scan(&t.ID, &t.Keyword); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const upsertTag = `INSERT INTO filter_tag (id, keyword) VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET keyword = excluded.keyword`

// UpsertTag inserts or replaces one tag row.
func (q *Queries) UpsertTag(ctx context.Context, t FilterTag) error {
	_, err := q.db.ExecContext(ctx, upsertTag, t.ID, t.Keyword)
	return err
}

// DeleteTagsAbsent removes tag rows not present in the query's id set.
func (q *Queries) DeleteTagsAbsent(ctx context.Context, query string, args []any) error {
	_, err := q.db.ExecContext(ctx, query, args...)
	return err
}

const deleteFilterTagLinks = `DELETE FROM filter_tag_link WHERE filter_id = ?`

// DeleteFilterTagLinks removes all tag links for one filter, ahead of a
// full replace (spec §4.8).
func (q *Queries) DeleteFilterTagLinks(ctx context.Context, filterID int64) error {
	_, err := q.db.ExecContext(ctx, deleteFilterTagLinks, filterID)
	return err
}

const insertFilterTagLink = `INSERT INTO filter_tag_link (filter_id, tag_id) VALUES (?, ?)`

// InsertFilterTagLink adds one filter-tag association.
func (q *Queries) InsertFilterTagLink(ctx context.Context, filterID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, insertFilterTagLink, filterID, tagID)
	return err
}

const deleteFilterLocaleLinks = `DELETE FROM filter_locale WHERE filter_id = ?`

// DeleteFilterLocaleLinks removes all locale claims for one filter, ahead of
// a full replace (spec §4.8).
func (q *Queries) DeleteFilterLocaleLinks(ctx context.Context, filterID int64) error {
	_, err := q.db.ExecContext(ctx, deleteFilterLocaleLinks, filterID)
	return err
}

const insertFilterLocaleLink = `INSERT INTO filter_locale (filter_id, lang) VALUES (?, ?)`

// InsertFilterLocaleLink adds one filter-locale claim.
func (q *Queries) InsertFilterLocaleLink(ctx context.Context, filterID int64, lang string) error {
	_, err := q.db.ExecContext(ctx, insertFilterLocaleLink, filterID, lang)
	return err
}
