package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AdguardTeam/FilterListManager/internal/logging"
	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary
)

// PragmaOptions tunes the performance pragmas NewConnection applies.
// Zero values are not valid pragma inputs, so PragmaOptions is never used
// bare: callers get DefaultPragmaOptions() unless they pass their own.
type PragmaOptions struct {
	CacheSizeKB   int64
	MmapSizeBytes int64
	BusyTimeoutMS int64
}

// DefaultPragmaOptions mirrors the values internal/config.setDefaults ships,
// so a caller that never touches config.DatabaseConfig still gets a sane
// connection (every test in this repo relies on exactly this).
func DefaultPragmaOptions() PragmaOptions {
	return PragmaOptions{CacheSizeKB: 64000, MmapSizeBytes: 268435456, BusyTimeoutMS: 5000}
}

// PragmaOptionsFromConfig adapts an internal/config.DatabaseConfig into the
// PragmaOptions NewConnection expects, falling back to DefaultPragmaOptions
// field-by-field for anything left at its zero value.
func PragmaOptionsFromConfig(cacheSizeKB, mmapSizeBytes, busyTimeoutMS int64) PragmaOptions {
	opt := DefaultPragmaOptions()
	if cacheSizeKB != 0 {
		opt.CacheSizeKB = cacheSizeKB
	}
	if mmapSizeBytes != 0 {
		opt.MmapSizeBytes = mmapSizeBytes
	}
	if busyTimeoutMS != 0 {
		opt.BusyTimeoutMS = busyTimeoutMS
	}
	return opt
}

// NewConnection creates a new SQLite database connection with optimized settings.
// It creates the database directory if it doesn't exist and applies performance
// pragmas, using opts[0] if given or DefaultPragmaOptions() otherwise.
func NewConnection(ctx context.Context, dbPath string, opts ...PragmaOptions) (*sql.DB, error) {
	const dbDirPerm = 0o750
	log := logging.FromContext(ctx)

	pragmaOpts := DefaultPragmaOptions()
	if len(opts) > 0 {
		pragmaOpts = opts[0]
	}

	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database connection
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool (must be done before any queries)
	configurePool(db)

	// Test the connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Apply performance pragmas
	if err := applyPragmas(db, pragmaOpts); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Run migrations
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Str("path", dbPath).Int64("cache_kb", pragmaOpts.CacheSizeKB).Msg("database connection established")

	return db, nil
}

// applyPragmas configures SQLite for optimal performance.
func applyPragmas(db *sql.DB, opt PragmaOptions) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",   // Write-Ahead Logging for concurrent access
		"PRAGMA synchronous = NORMAL", // Safe in WAL mode
		fmt.Sprintf("PRAGMA cache_size = -%d", opt.CacheSizeKB),
		"PRAGMA temp_store = MEMORY", // Temporary tables in RAM
		fmt.Sprintf("PRAGMA mmap_size = %d", opt.MmapSizeBytes),
		fmt.Sprintf("PRAGMA busy_timeout = %d", opt.BusyTimeoutMS),
		"PRAGMA foreign_keys = ON", // Enable referential integrity
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// configurePool sets connection pool parameters optimized for SQLite.
// SQLite only supports one writer at a time, so we limit connections.
//
// Connections are configured to never expire or close while idle. This is safe
// because the application's lifecycle matches the database connection's lifecycle:
// the process terminates before the underlying database file is rotated or replaced.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(1)    // SQLite is single-writer
	db.SetMaxIdleConns(1)    // Keep one connection alive
	db.SetConnMaxLifetime(0) // Never expire connections
	db.SetConnMaxIdleTime(0) // Never close idle connections
}

// Close closes the database connection gracefully.
func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
