// Package cliapp wires the config/logging/storage/coordinator stack into one
// App for cmd/flmctl, following the teacher's internal/cli.App pattern: a
// root command builds one App in PersistentPreRunE and every subcommand
// reaches it through the package-level app variable in cmd/flmctl/root.go.
package cliapp

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AdguardTeam/FilterListManager/internal/application/usecase"
	"github.com/AdguardTeam/FilterListManager/internal/config"
	"github.com/AdguardTeam/FilterListManager/internal/coordinator"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/fetch"
	"github.com/AdguardTeam/FilterListManager/internal/filterlist"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

// ExitCode values match spec §6's documented CLI exit-code table.
type ExitCode int

const (
	ExitOK        ExitCode = 0
	ExitDatabase  ExitCode = 1
	ExitMigration ExitCode = 2
	ExitNetwork   ExitCode = 3
	ExitParse     ExitCode = 4
)

// CodedError pairs an error with the exit code its caller should report.
type CodedError struct {
	Code ExitCode
	Err  error
}

func (e *CodedError) Error() string { return e.Err.Error() }
func (e *CodedError) Unwrap() error { return e.Err }

// App bundles every dependency a flmctl subcommand needs.
type App struct {
	Config  *config.Config
	Watcher *config.Watcher // nil unless configPath was non-empty
	DB      *sql.DB
	TxMgr   *sqlite.TxManager
	Service *usecase.Service
}

// New loads configuration from configPath (may be empty), opens and migrates
// the database, and wires the repository/coordinator/usecase stack. When
// configPath is non-empty it also starts a config.Watcher, so editing the
// file on disk updates App.Config for the next subcommand invocation without
// a restart (spec's ambient config-reload allowance; see internal/config).
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, &CodedError{Code: ExitDatabase, Err: fmt.Errorf("load config: %w", err)}
	}

	var watcher *config.Watcher
	if configPath != "" {
		w, err := config.NewWatcher(configPath)
		if err != nil {
			return nil, &CodedError{Code: ExitDatabase, Err: fmt.Errorf("watch config: %w", err)}
		}
		log := logging.FromContext(ctx)
		w.OnChange(func(c *config.Config) {
			log.Info().Str("path", configPath).Msg("config file changed, reloaded")
		})
		if err := w.Start(); err != nil {
			return nil, &CodedError{Code: ExitDatabase, Err: fmt.Errorf("start config watch: %w", err)}
		}
		watcher = w
	}

	dbPath, err := sqlite.ResolveDBPath(cfg.Database.Path, "")
	if err != nil {
		return nil, &CodedError{Code: ExitDatabase, Err: fmt.Errorf("resolve db path: %w", err)}
	}

	pragmaOpts := sqlite.PragmaOptionsFromConfig(cfg.Database.CacheSizeKB, cfg.Database.MmapSizeBytes, cfg.Database.BusyTimeoutMS)
	db, err := sqlite.NewConnection(ctx, dbPath, pragmaOpts)
	if err != nil {
		return nil, &CodedError{Code: ExitMigration, Err: fmt.Errorf("open database: %w", err)}
	}

	tm := sqlite.NewTxManager(db)

	filters := sqlite.NewFilterRepository(db)
	groups := sqlite.NewFilterGroupRepository(db)
	tags := sqlite.NewFilterTagRepository(db)
	locales := sqlite.NewFilterLocaleRepository(db)
	rules := sqlite.NewRulesListRepository(db)
	flags := sqlite.NewFilterInnerFlagsRepository(db)
	metadata := sqlite.NewMetadataRepository(db)

	fetcher := &fetch.Fetcher{UserAgent: cfg.AppName + "/" + cfg.Version}

	coord := &coordinator.Coordinator{
		TxManager: tm,
		NewRepos: func(tx *sql.Tx) (repository.FilterRepository, repository.RulesListRepository, repository.FilterInnerFlagsRepository) {
			var handle sqlc.DBTX = tx
			return sqlite.NewFilterRepository(handle), sqlite.NewRulesListRepository(handle), sqlite.NewFilterInnerFlagsRepository(handle)
		},
		Filters:     filters,
		Rules:       rules,
		Fetcher:     fetcher,
		Constants:   filterlist.NewConstantSet(cfg.FiltersCompilationPolicy.Constants),
		Locale:      cfg.Locale,
		Parallelism: cfg.Updater.Parallelism,
		Timeout:     cfg.RequestTimeout,
	}

	svc := &usecase.Service{
		Filters:     filters,
		Groups:      groups,
		Tags:        tags,
		Locales:     locales,
		Rules:       rules,
		InnerFlags:  flags,
		Metadata:    metadata,
		Coordinator: coord,
		Fetcher:     fetcher,
		Locale:      cfg.Locale,
	}

	logging.FromContext(ctx).Info().Str("db", dbPath).Msg("flmctl ready")

	return &App{Config: cfg, Watcher: watcher, DB: db, TxMgr: tm, Service: svc}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
