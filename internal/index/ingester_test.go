package index_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/AdguardTeam/FilterListManager/internal/domain/entity"
	"github.com/AdguardTeam/FilterListManager/internal/index"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite"
	"github.com/AdguardTeam/FilterListManager/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/AdguardTeam/FilterListManager/internal/logging"
)

func openTestDB(t *testing.T) *sqlite.TxManager {
	t.Helper()
	ctx := logging.WithContext(context.Background(), zerolog.Nop())

	db, err := sqlite.NewConnection(ctx, t.TempDir()+"/test.sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlite.NewTxManager(db)
}

func reposFor(db sqlc.DBTX) index.Repositories {
	return index.Repositories{
		Groups:              sqlite.NewFilterGroupRepository(db),
		Tags:                sqlite.NewFilterTagRepository(db),
		Filters:             sqlite.NewFilterRepository(db),
		Locales:             sqlite.NewFilterLocaleRepository(db),
		GroupLocalisations:  sqlite.NewFilterGroupLocalisationRepository(db),
		TagLocalisations:    sqlite.NewFilterTagLocalisationRepository(db),
		FilterLocalisations: sqlite.NewFilterLocalisationRepository(db),
		Rules:               sqlite.NewRulesListRepository(db),
		InnerFlags:          sqlite.NewFilterInnerFlagsRepository(db),
	}
}

func loadFixtures(t *testing.T) (index.Index, index.IndexI18N) {
	t.Helper()

	filtersJSON, err := os.ReadFile("../../testdata/filters.json")
	require.NoError(t, err)
	i18nJSON, err := os.ReadFile("../../testdata/filters_i18n.json")
	require.NoError(t, err)

	idx, err := index.DecodeIndex(filtersJSON)
	require.NoError(t, err)
	i18n, err := index.DecodeIndexI18N(i18nJSON)
	require.NoError(t, err)

	return idx, i18n
}

func TestIngestFreshInstall(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	tm := openTestDB(t)
	idx, i18n := loadFixtures(t)

	err := tm.ExecuteDB(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return index.Ingest(ctx, reposFor(tx), idx, i18n)
	})
	require.NoError(t, err)

	groups := sqlite.NewFilterGroupRepository(tm.DB())
	all, err := groups.SelectLocalised(ctx, "en")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, entity.GroupID(1), all[0].ID)

	filters := sqlite.NewFilterRepository(tm.DB())
	f, err := filters.SelectByID(ctx, entity.FilterID(1))
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, "AdGuard Base Filter", f.Title)
}

func TestIngestIsIdempotent(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	tm := openTestDB(t)
	idx, i18n := loadFixtures(t)

	for i := 0; i < 2; i++ {
		err := tm.ExecuteDB(ctx, func(ctx context.Context, tx *sql.Tx) error {
			return index.Ingest(ctx, reposFor(tx), idx, i18n)
		})
		require.NoError(t, err)
	}

	filters := sqlite.NewFilterRepository(tm.DB())
	all, err := filters.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
