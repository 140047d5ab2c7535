package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

func newDB(t *testing.T) (context.Context, *sqlite.TxManager) {
	t.Helper()
	ctx := logging.WithContext(context.Background(), zerolog.Nop())

	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return ctx, sqlite.NewTxManager(db)
}

func TestFilterGroupDeleteAbsentKeepsReservedGroup(t *testing.T) {
	ctx, tm := newDB(t)
	groups := sqlite.NewFilterGroupRepository(tm.DB())

	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{
		{ID: 1, Name: "Ad Blocking"},
		{ID: 2, Name: "Privacy"},
	}))

	require.NoError(t, groups.DeleteAbsent(ctx, []entity.GroupID{1}))

	all, err := groups.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, entity.GroupID(1), all[0].ID)
}

func TestFilterGroupDeleteAbsentEmptyKeepListClearsAllButReserved(t *testing.T) {
	ctx, tm := newDB(t)
	groups := sqlite.NewFilterGroupRepository(tm.DB())

	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))
	require.NoError(t, groups.DeleteAbsent(ctx, nil))

	all, err := groups.SelectAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFilterTagUpsertAndLinks(t *testing.T) {
	ctx, tm := newDB(t)
	db := tm.DB()
	groups := sqlite.NewFilterGroupRepository(db)
	tags := sqlite.NewFilterTagRepository(db)
	filters := sqlite.NewFilterRepository(db)

	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))
	require.NoError(t, filters.Upsert(ctx, entity.Filter{
		ID: 1, GroupID: 1, Title: "Base", IsEnabled: true, TimeUpdated: time.Now(),
	}))

	require.NoError(t, tags.UpsertMany(ctx, []entity.FilterTag{
		{ID: 1, Keyword: "purpose:ads"},
		{ID: 2, Keyword: "purpose:privacy"},
	}))
	require.NoError(t, tags.ReplaceFilterLinks(ctx, 1, []entity.TagID{1, 2}))

	all, err := tags.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, tags.DeleteAbsent(ctx, []entity.TagID{1}))
	all, err = tags.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestFilterDeleteAbsentProtectsCustomRange(t *testing.T) {
	ctx, tm := newDB(t)
	db := tm.DB()
	groups := sqlite.NewFilterGroupRepository(db)
	filters := sqlite.NewFilterRepository(db)

	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))
	require.NoError(t, filters.Upsert(ctx, entity.Filter{
		ID: 1, GroupID: 1, Title: "Index filter", IsEnabled: true, TimeUpdated: time.Now(),
	}))
	require.NoError(t, filters.Upsert(ctx, entity.Filter{
		ID: entity.MaximumCustomFilterID, GroupID: 0, Title: "Custom", IsEnabled: true, TimeUpdated: time.Now(),
	}))

	// First miss: the index filter survives, only its missing_count is bumped.
	require.NoError(t, filters.DeleteAbsent(ctx, nil))

	got, err := filters.SelectByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Second consecutive miss crosses the threshold and deletes it.
	require.NoError(t, filters.DeleteAbsent(ctx, nil))

	got, err = filters.SelectByID(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = filters.SelectByID(ctx, entity.MaximumCustomFilterID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestRulesListUpsertReconcilesAndReadsRaw(t *testing.T) {
	ctx, tm := newDB(t)
	db := tm.DB()
	groups := sqlite.NewFilterGroupRepository(db)
	filters := sqlite.NewFilterRepository(db)
	rules := sqlite.NewRulesListRepository(db)

	require.NoError(t, groups.UpsertMany(ctx, []entity.FilterGroup{{ID: 1, Name: "Ad Blocking"}}))
	require.NoError(t, filters.Upsert(ctx, entity.Filter{
		ID: 1, GroupID: 1, Title: "Base", IsEnabled: true, TimeUpdated: time.Now(),
	}))

	require.NoError(t, rules.Upsert(ctx, entity.RulesList{
		FilterID:     1,
		RulesText:    "||a.example^\n||b.example^",
		DisabledText: "||b.example^\n||stale.example^",
	}))

	raw, err := rules.SelectRawByFilterID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, raw)
	require.Equal(t, "||a.example^\n||b.example^", raw.RulesText)

	info, err := rules.SelectActiveRulesInfo(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, info.RulesCount)
	require.Equal(t, 1, info.DisabledCount)

	counts, err := rules.SelectRulesCountByFilter(ctx, []entity.FilterID{1})
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Equal(t, entity.FilterID(1), counts[0].FilterID)
}

func TestMetadataAllocateCustomFilterIDCountsDown(t *testing.T) {
	ctx, tm := newDB(t)
	metadata := sqlite.NewMetadataRepository(tm.DB())

	first, err := metadata.AllocateCustomFilterID(ctx)
	require.NoError(t, err)
	second, err := metadata.AllocateCustomFilterID(ctx)
	require.NoError(t, err)

	require.Equal(t, entity.MaximumCustomFilterID, first)
	require.Equal(t, entity.MaximumCustomFilterID-1, second)
}
