package coordinator_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/AdguardTeam/FilterListManager/internal/coordinator"
	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/fetch"
	"github.com/AdguardTeam/FilterListManager/internal/filterlist"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

func newRepoFactory() coordinator.RepositoryFactory {
	return func(tx *sql.Tx) (repository.FilterRepository, repository.RulesListRepository, repository.FilterInnerFlagsRepository) {
		var db sqlc.DBTX = tx
		return sqlite.NewFilterRepository(db), sqlite.NewRulesListRepository(db), sqlite.NewFilterInnerFlagsRepository(db)
	}
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return "file://" + path
}

func TestCoordinatorRunFullFetchUpdatesFilter(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())

	tmp := t.TempDir()
	db, err := sqlite.NewConnection(ctx, filepath.Join(tmp, "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	tm := sqlite.NewTxManager(db)

	filterURL := writeFile(t, tmp, "list.txt", "! Title: Example List\n! Version: 2\n||example.com^\n||tracker.example^\n")

	groups := sqlite.NewFilterGroupRepository(db)
	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))

	filters := sqlite.NewFilterRepository(db)
	rules := sqlite.NewRulesListRepository(db)

	f := entity.Filter{
		ID:             entity.FilterID(1),
		GroupID:        entity.GroupID(1),
		Title:          "Example List",
		Version:        "1",
		TimeUpdated:    time.Now().Add(-48 * time.Hour),
		ExpiresSeconds: 3600,
		DownloadURL:    filterURL,
		IsEnabled:      true,
	}
	require.NoError(t, filters.Upsert(ctx, f))

	c := &coordinator.Coordinator{
		TxManager:   tm,
		NewRepos:    newRepoFactory(),
		Filters:     filters,
		Rules:       rules,
		Fetcher:     &fetch.Fetcher{UserAgent: "flm-test"},
		Constants:   filterlist.NewConstantSet(nil),
		Parallelism: 2,
		Timeout:     5 * time.Second,
	}

	result, err := c.Run(ctx)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.ElementsMatch(t, []entity.FilterID{1}, result.Updated)

	updated, err := filters.SelectByID(ctx, entity.FilterID(1))
	require.NoError(t, err)
	require.Equal(t, "2", updated.Version)

	rl, err := rules.SelectByFilterID(ctx, entity.FilterID(1))
	require.NoError(t, err)
	require.Len(t, rl.Rules(), 2)
}

func TestCoordinatorRunSkipsFreshFilter(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())

	tmp := t.TempDir()
	db, err := sqlite.NewConnection(ctx, filepath.Join(tmp, "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	tm := sqlite.NewTxManager(db)

	groups := sqlite.NewFilterGroupRepository(db)
	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))

	filters := sqlite.NewFilterRepository(db)
	rules := sqlite.NewRulesListRepository(db)

	f := entity.Filter{
		ID:             entity.FilterID(1),
		GroupID:        entity.GroupID(1),
		Title:          "Fresh List",
		Version:        "1",
		TimeUpdated:    time.Now(),
		ExpiresSeconds: 3600,
		DownloadURL:    "file:///does/not/matter",
		IsEnabled:      true,
	}
	require.NoError(t, filters.Upsert(ctx, f))

	c := &coordinator.Coordinator{
		TxManager:   tm,
		NewRepos:    newRepoFactory(),
		Filters:     filters,
		Rules:       rules,
		Fetcher:     &fetch.Fetcher{},
		Constants:   filterlist.NewConstantSet(nil),
		Parallelism: 1,
		Timeout:     time.Second,
	}

	result, err := c.Run(ctx)
	require.NoError(t, err)
	require.Empty(t, result.Updated)
	require.Empty(t, result.Unchanged)
	require.Empty(t, result.Errors)
}

func TestCoordinatorRunIsolatesPerFilterErrors(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())

	tmp := t.TempDir()
	db, err := sqlite.NewConnection(ctx, filepath.Join(tmp, "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	tm := sqlite.NewTxManager(db)

	filterURL := writeFile(t, tmp, "good.txt", "! Title: Good List\n! Version: 2\n||good.example^\n")

	groups := sqlite.NewFilterGroupRepository(db)
	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))

	filters := sqlite.NewFilterRepository(db)
	rules := sqlite.NewRulesListRepository(db)

	good := entity.Filter{
		ID: entity.FilterID(1), GroupID: entity.GroupID(1), Title: "Good List", Version: "1",
		TimeUpdated: time.Now().Add(-48 * time.Hour), ExpiresSeconds: 3600,
		DownloadURL: filterURL, IsEnabled: true,
	}
	broken := entity.Filter{
		ID: entity.FilterID(2), GroupID: entity.GroupID(1), Title: "Broken List", Version: "1",
		TimeUpdated: time.Now().Add(-48 * time.Hour), ExpiresSeconds: 3600,
		DownloadURL: "file:///no/such/file/exists.txt", IsEnabled: true,
	}
	require.NoError(t, filters.Upsert(ctx, good))
	require.NoError(t, filters.Upsert(ctx, broken))

	c := &coordinator.Coordinator{
		TxManager:   tm,
		NewRepos:    newRepoFactory(),
		Filters:     filters,
		Rules:       rules,
		Fetcher:     &fetch.Fetcher{},
		Constants:   filterlist.NewConstantSet(nil),
		Parallelism: 2,
		Timeout:     5 * time.Second,
	}

	result, err := c.Run(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []entity.FilterID{1}, result.Updated)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors, entity.FilterID(2))
}
