package sqlc

import "context"

const selectMetadata = `SELECT id, version, custom_filter_id_counter FROM metadata WHERE id = 1`

// SelectMetadata returns the singleton metadata row.
func (q *Queries) SelectMetadata(ctx context.Context) (Metadata, error) {
	var m Metadata
	err := q.db.QueryRowContext(ctx, selectMetadata).Scan(&m.ID, &m.Version, &m.CustomFilterIDCounter)
	return m, err
}

const updateMetadata = `UPDATE metadata SET version = ?, custom_filter_id_counter = ? WHERE id = 1`

// UpdateMetadata overwrites the singleton metadata row.
func (q *Queries) UpdateMetadata(ctx context.Context, m Metadata) error {
	_, err := q.db.ExecContext(ctx, updateMetadata, m.Version, m.CustomFilterIDCounter)
	return err
}

const decrementCustomFilterCounter = `UPDATE metadata SET custom_filter_id_counter = custom_filter_id_counter - 1 WHERE id = 1 RETURNING custom_filter_id_counter`

// DecrementCustomFilterCounter atomically decrements and returns the new
// counter value, the id to allocate to the next custom filter (spec §3
// invariant 4, §8).
func (q *Queries) DecrementCustomFilterCounter(ctx context.Context) (int64, error) {
	var next int64
	err := q.db.QueryRowContext(ctx, decrementCustomFilterCounter).Scan(&next)
	return next, err
}
