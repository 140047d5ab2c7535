package sqlc

import "context"

const selectAllFilters = `SELECT id, group_id, title, description, homepage_url, license_url,
	checksum, version, time_updated, expires_seconds, download_url,
	subscription_url, diff_path, is_enabled, is_trusted FROM filter ORDER BY id`

// SelectAllFilters returns every filter row.
func (q *Queries) SelectAllFilters(ctx context.Context) ([]Filter, error) {
	rows, err := q.db.QueryContext(ctx, selectAllFilters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Filter
	for rows.Next() {
		var f Filter
		if err := rows.Scan(&f.ID, &f.GroupID, &f.Title, &f.Description, &f.HomepageURL,
			&f.LicenseURL, &f.Checksum, &f.Version, &f.TimeUpdated, &f.ExpiresSeconds,
			&f.DownloadURL, &f.SubscriptionURL, &f.DiffPath, &f.IsEnabled, &f.IsTrusted); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

const selectEnabledFilters = `SELECT id, group_id, title, description, homepage_url, license_url,
	checksum, version, time_updated, expires_seconds, download_url,
	subscription_url, diff_path, is_enabled, is_trusted FROM filter WHERE is_enabled = 1 ORDER BY id`

// SelectEnabledFilters returns every filter row with is_enabled = true.
func (q *Queries) SelectEnabledFilters(ctx context.Context) ([]Filter, error) {
	rows, err := q.db.QueryContext(ctx, selectEnabledFilters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Filter
	for rows.Next() {
		var f Filter
		if err := rows.Scan(&f.ID, &f.GroupID, &f.Title, &f.Description, &f.HomepageURL,
			&f.LicenseURL, &f.Checksum, &f.Version, &f.TimeUpdated, &f.ExpiresSeconds,
			&f.DownloadURL, &f.SubscriptionURL, &f.DiffPath, &f.IsEnabled, &f.IsTrusted); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

const selectFilterByID = `SELECT id, group_id, title, description, homepage_url, license_url,
	checksum, version, time_updated, expires_seconds, download_url,
	subscription_url, diff_path, is_enabled, is_trusted FROM filter WHERE id = ?`

// SelectFilterByID returns one filter row, or sql.ErrNoRows.
func (q *Queries) SelectFilterByID(ctx context.Context, id int64) (Filter, error) {
	var f Filter
	err := q.db.QueryRowContext(ctx, selectFilterByID, id).Scan(&f.ID, &f.GroupID, &f.Title,
		&f.Description, &f.HomepageURL, &f.LicenseURL, &f.Checksum, &f.Version, &f.TimeUpdated,
		&f.ExpiresSeconds, &f.DownloadURL, &f.SubscriptionURL, &f.DiffPath, &f.IsEnabled, &f.IsTrusted)
	return f, err
}

const upsertFilter = `INSERT INTO filter (id, group_id, title, description, homepage_url,
	license_url, checksum, version, time_updated, expires_seconds, download_url,
	subscription_url, diff_path, is_enabled, is_trusted, missing_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
	ON CONFLICT(id) DO UPDATE SET
		group_id = excluded.group_id,
		title = excluded.title,
		description = excluded.description,
		homepage_url = excluded.homepage_url,
		license_url = excluded.license_url,
		checksum = excluded.checksum,
		version = excluded.version,
		time_updated = excluded.time_updated,
		expires_seconds = excluded.expires_seconds,
		download_url = excluded.download_url,
		subscription_url = excluded.subscription_url,
		diff_path = excluded.diff_path,
		is_enabled = excluded.is_enabled,
		is_trusted = excluded.is_trusted,
		missing_count = 0`

// UpsertFilter inserts or fully replaces one filter row.
func (q *Queries) UpsertFilter(ctx context.Context, f Filter) error {
	_, err := q.db.ExecContext(ctx, upsertFilter, f.ID, f.GroupID, f.Title, f.Description,
		f.HomepageURL, f.LicenseURL, f.Checksum, f.Version, f.TimeUpdated, f.ExpiresSeconds,
		f.DownloadURL, f.SubscriptionURL, f.DiffPath, f.IsEnabled, f.IsTrusted)
	return err
}

// SetFiltersEnabled flips is_enabled for the given ids. ids must be
// non-empty; callers build the placeholder string themselves since
// database/sql has no native slice-arg expansion.
func (q *Queries) SetFiltersEnabled(ctx context.Context, query string, args []any) error {
	_, err := q.db.ExecContext(ctx, query, args...)
	return err
}

const deleteFilterByID = `DELETE FROM filter WHERE id = ?`

// DeleteFilterByID removes one filter row; cascades handle dependents.
func (q *Queries) DeleteFilterByID(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteFilterByID, id)
	return err
}

// DeleteFiltersAbsent removes filter rows matching the given query; callers
// build the WHERE clause themselves (absent-ids set, missing_count
// threshold, or both).
func (q *Queries) DeleteFiltersAbsent(ctx context.Context, query string, args []any) error {
	_, err := q.db.ExecContext(ctx, query, args...)
	return err
}

// MarkFiltersAbsent bumps missing_count for filter rows matching the given
// query; callers build the WHERE clause (the absent-ids set) themselves.
func (q *Queries) MarkFiltersAbsent(ctx context.Context, query string, args []any) error {
	_, err := q.db.ExecContext(ctx, query, args...)
	return err
}
