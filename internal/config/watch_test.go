package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AdguardTeam/FilterListManager/internal/config"
)

func TestWatcherReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: en\n"), 0o600))

	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	require.Equal(t, "en", w.Get().Locale)

	changed := make(chan *config.Config, 1)
	w.OnChange(func(c *config.Config) { changed <- c })
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(path, []byte("locale: fr\n"), 0o600))

	select {
	case c := <-changed:
		require.Equal(t, "fr", c.Locale)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
	require.Equal(t, "fr", w.Get().Locale)
}

func TestNewWatcherRequiresPath(t *testing.T) {
	_, err := config.NewWatcher("")
	require.Error(t, err)
}
