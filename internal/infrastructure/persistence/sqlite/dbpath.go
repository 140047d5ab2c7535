package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDBPath expands a leading "~" to the user's home directory and
// makes a relative path absolute against dataDir, so the configured
// database.path can be written portably in config files (supplemented from
// db_file_utils.rs).
func ResolveDBPath(path, dataDir string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("sqlite: database path must not be empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("sqlite: resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	if dataDir == "" {
		return filepath.Abs(path)
	}
	return filepath.Join(dataDir, path), nil
}
