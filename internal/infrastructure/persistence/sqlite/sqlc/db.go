// Package sqlc is a hand-maintained stand-in for what `sqlc generate` would
// emit from the schema under migrations/: a DBTX-scoped Queries type with
// one method per prepared statement and a row struct per table. Repositories
// in the parent package wrap a *Queries and hydrate domain entities from its
// rows. A few repositories also pass SQL they build themselves (IN lists,
// DeleteAbsent) through DBTX, and the migration runner issues its own SQL.
package sqlc

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, letting Queries run inside
// or outside a transaction transparently.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries wraps a DBTX with typed, table-scoped statements.
type Queries struct {
	db DBTX
}

// New builds a Queries bound to db (a *sql.DB or a *sql.Tx).
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy of q bound to tx, for callers composing several
// repositories' statements into one transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
