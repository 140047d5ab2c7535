package usecase_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/AdguardTeam/FilterListManager/internal/application/port"
	"github.com/AdguardTeam/FilterListManager/internal/application/usecase"
	"github.com/AdguardTeam/FilterListManager/internal/coordinator"
	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/domain/repository"
	"github.com/AdguardTeam/FilterListManager/internal/fetch"
	"github.com/AdguardTeam/FilterListManager/internal/filterlist"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

func newService(t *testing.T) (*usecase.Service, context.Context) {
	t.Helper()
	ctx := logging.WithContext(context.Background(), zerolog.Nop())

	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	tm := sqlite.NewTxManager(db)

	groups := sqlite.NewFilterGroupRepository(db)
	tags := sqlite.NewFilterTagRepository(db)
	locales := sqlite.NewFilterLocaleRepository(db)
	filters := sqlite.NewFilterRepository(db)
	rules := sqlite.NewRulesListRepository(db)
	flags := sqlite.NewFilterInnerFlagsRepository(db)
	metadata := sqlite.NewMetadataRepository(db)

	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))

	c := &coordinator.Coordinator{
		TxManager: tm,
		NewRepos: func(tx *sql.Tx) (repository.FilterRepository, repository.RulesListRepository, repository.FilterInnerFlagsRepository) {
			var handle sqlc.DBTX = tx
			return sqlite.NewFilterRepository(handle), sqlite.NewRulesListRepository(handle), sqlite.NewFilterInnerFlagsRepository(handle)
		},
		Filters:     filters,
		Rules:       rules,
		Fetcher:     &fetch.Fetcher{},
		Constants:   filterlist.NewConstantSet(nil),
		Parallelism: 2,
		Timeout:     5 * time.Second,
	}

	svc := &usecase.Service{
		Filters:     filters,
		Groups:      groups,
		Tags:        tags,
		Locales:     locales,
		Rules:       rules,
		InnerFlags:  flags,
		Metadata:    metadata,
		Coordinator: c,
		Fetcher:     &fetch.Fetcher{},
		Locale:      "en",
	}
	return svc, ctx
}

func TestInstallCustomFilterListAllocatesHighID(t *testing.T) {
	svc, ctx := newService(t)

	id, err := svc.InstallCustomFilterList(ctx, port.InstallCustomFilterListRequest{
		URL:     "https://example.com/my-list.txt",
		Trusted: true,
		Title:   "My List",
	})
	require.NoError(t, err)
	require.True(t, id.IsCustom())

	full, err := svc.GetFullFilterListByID(ctx, id, "en")
	require.NoError(t, err)
	require.NotNil(t, full)
	require.Equal(t, "My List", full.Filter.Title)
	require.True(t, full.Filter.IsTrusted)
}

func TestInstallCustomFilterListCountsDown(t *testing.T) {
	svc, ctx := newService(t)

	first, err := svc.InstallCustomFilterList(ctx, port.InstallCustomFilterListRequest{URL: "https://example.com/a.txt"})
	require.NoError(t, err)
	second, err := svc.InstallCustomFilterList(ctx, port.InstallCustomFilterListRequest{URL: "https://example.com/b.txt"})
	require.NoError(t, err)

	require.Equal(t, entity.MaximumCustomFilterID, first)
	require.Equal(t, entity.MaximumCustomFilterID-1, second)
}

func TestSaveRulesToFilterListReconcilesDisabled(t *testing.T) {
	svc, ctx := newService(t)

	f := entity.Filter{ID: 1, GroupID: 1, Title: "Base", IsEnabled: true, TimeUpdated: time.Now()}
	require.NoError(t, svc.Filters.Upsert(ctx, f))

	err := svc.SaveRulesToFilterList(ctx, 1,
		[]string{"||a.example^"},
		[]string{"||a.example^", "||stale.example^"},
	)
	require.NoError(t, err)

	info, err := svc.GetActiveRulesInfo(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, info.RulesCount)
	require.Equal(t, 1, info.DisabledCount)
}

func TestEnableFilterLists(t *testing.T) {
	svc, ctx := newService(t)

	f := entity.Filter{ID: 1, GroupID: 1, Title: "Base", IsEnabled: true, TimeUpdated: time.Now()}
	require.NoError(t, svc.Filters.Upsert(ctx, f))

	require.NoError(t, svc.EnableFilterLists(ctx, []entity.FilterID{1}, false))

	got, err := svc.Filters.SelectByID(ctx, 1)
	require.NoError(t, err)
	require.False(t, got.IsEnabled)
}

func TestGetAllGroupsAndTags(t *testing.T) {
	svc, ctx := newService(t)

	groups, err := svc.GetAllGroups(ctx, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	tags, err := svc.GetAllTags(ctx)
	require.NoError(t, err)
	require.Empty(t, tags)
}
