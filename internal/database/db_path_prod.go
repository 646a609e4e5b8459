//go:build prod

package database

import (
	"log/slog"
	"os"
	"path/filepath"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database is stored in the user's config directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		slog.Warn("failed to get user config dir, using working directory", "error", err)
		return "pastesync.db"
	}

	appDir := filepath.Join(configDir, "pastesync")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		slog.Warn("failed to create app config dir, using working directory", "dir", appDir, "error", err)
		return "pastesync.db"
	}

	return filepath.Join(appDir, "pastesync.db")
}

func IsDevelopment() bool {
	return false
}
