package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// ErrMigrationGap is returned when the migrations directory is missing an
// ordinal below the highest one present (spec §4.11, §8). goose itself
// tolerates non-contiguous versions (it sorts by whatever numeric prefix it
// finds), so this repo runs its own pre-check before handing the directory
// to goose.Up, rather than relying on goose to catch it.
var ErrMigrationGap = errors.New("sqlite: migration gap")

func init() {
	goose.SetBaseFS(embeddedMigrations)
	goose.SetLogger(goose.NopLogger())
}

// RunMigrations applies every pending migration via goose
// (github.com/pressly/goose/v3), after a gap-detection pre-scan of the
// embedded migrations directory, and then mirrors goose's tracked version
// into this database's own metadata.version row, which the rest of this
// repo's code (DBMetadata, SchemaVersion) reads instead of goose's own
// goose_db_version table.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	log := logging.FromContext(ctx)

	if err := checkNoOrdinalGap(); err != nil {
		return err
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlite: set goose dialect: %w", err)
	}

	before, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("sqlite: read goose db version: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("sqlite: apply migrations: %w", err)
	}

	after, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("sqlite: read goose db version after migrating: %w", err)
	}

	if err := syncMetadataVersion(ctx, db, after); err != nil {
		return fmt.Errorf("sqlite: sync metadata version: %w", err)
	}

	if after > before {
		log.Info().Int64("from_version", before).Int64("to_version", after).Msg("database migrations applied")
	} else {
		log.Debug().Int64("version", after).Msg("database schema up to date")
	}

	return nil
}

// SchemaVersion returns the database's recorded schema version, read from
// this repo's own metadata table (kept in sync with goose by RunMigrations)
// rather than goose_db_version directly, so callers don't need a goose
// import just to report a number.
func SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	return currentVersion(ctx, db)
}

// syncMetadataVersion keeps metadata.version equal to goose's own tracked
// version; the metadata row always exists after migration 0001 runs.
func syncMetadataVersion(ctx context.Context, db *sql.DB, version int64) error {
	_, err := db.ExecContext(ctx, `UPDATE metadata SET version = ? WHERE id = 1`, version)
	if err != nil && strings.Contains(err.Error(), "no such table") {
		return nil
	}
	return err
}

func currentVersion(ctx context.Context, db *sql.DB) (int64, error) {
	var version int64
	err := db.QueryRowContext(ctx, `SELECT version FROM metadata WHERE id = 1`).Scan(&version)
	switch {
	case err == nil:
		return version, nil
	case strings.Contains(err.Error(), "no such table"):
		return 0, nil
	default:
		return 0, err
	}
}

// checkNoOrdinalGap scans the embedded migrations directory and fails if any
// ordinal below the highest one present is missing, so a renumbering mistake
// is caught before goose silently applies an out-of-order set.
func checkNoOrdinalGap() error {
	entries, err := fs.ReadDir(embeddedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("sqlite: read migrations dir: %w", err)
	}

	var ordinals []int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}

		ordinalStr, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			return fmt.Errorf("sqlite: migration filename %q missing ordinal prefix", e.Name())
		}

		ordinal, err := strconv.ParseInt(ordinalStr, 10, 64)
		if err != nil {
			return fmt.Errorf("sqlite: migration filename %q has non-numeric ordinal: %w", e.Name(), err)
		}
		ordinals = append(ordinals, ordinal)
	}

	sort.Slice(ordinals, func(i, j int) bool { return ordinals[i] < ordinals[j] })

	for i, ordinal := range ordinals {
		want := int64(i + 1)
		if ordinal != want {
			return fmt.Errorf("%w: expected ordinal %d, found %d", ErrMigrationGap, want, ordinal)
		}
	}

	return nil
}
