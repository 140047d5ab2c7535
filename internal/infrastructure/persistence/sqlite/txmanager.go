package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// TxManager is the connection-manager half of C10: it owns the *sql.DB and
// serialises write access behind a mutex, since ncruces/go-sqlite3 (like any
// SQLite driver) only supports one writer at a time even with
// SetMaxOpenConns(1) already forcing single-connection use. Reads may run
// concurrently; ExecuteDB wraps a unit of work in one transaction.
type TxManager struct {
	db       *sql.DB
	writerMu sync.Mutex
}

// NewTxManager wraps an already-opened, already-migrated *sql.DB.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// DB returns the underlying handle, for read-only repository construction
// that does not need transactional grouping.
func (m *TxManager) DB() *sql.DB { return m.db }

// ExecuteDB runs fn inside one transaction, committing on success and
// rolling back on error or panic. Write operations across the whole process
// are serialised by writerMu, matching C10's "serialised write access"
// contract (spec §4.10); ExecuteTx is the non-serialised variant for
// read-only work.
func (m *TxManager) ExecuteDB(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	m.writerMu.Lock()
	defer m.writerMu.Unlock()
	return m.ExecuteTx(ctx, fn)
}

// ExecuteTx runs fn inside one transaction without acquiring the writer
// lock, for callers that already hold it or that only read.
func (m *TxManager) ExecuteTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit transaction: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (m *TxManager) Close() error {
	return Close(m.db)
}
