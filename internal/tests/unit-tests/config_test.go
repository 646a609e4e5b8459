package unit_tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pastesync/internal/config"
	"pastesync/internal/debounce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfigEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("PASTESYNC_CONFIG", "")
	t.Setenv("PASTESYNC_STORAGE_BACKEND", "")
	t.Setenv("PASTESYNC_LOG_LEVEL", "")
	os.Unsetenv("PASTESYNC_CONFIG")
	os.Unsetenv("PASTESYNC_STORAGE_BACKEND")
	os.Unsetenv("PASTESYNC_LOG_LEVEL")
	return dir
}

func TestConfigLoad_Defaults(t *testing.T) {
	dir := isolateConfigEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "pastesync"), cfg.Storage.Root)
	assert.Equal(t, filepath.Join(dir, "pastesync", "pastesync.db"), cfg.Database.Path)
	assert.Equal(t, debounce.DefaultInterval, cfg.Debounce.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Policy.File)
}

func TestConfigLoad_FileAndEnv(t *testing.T) {
	dir := isolateConfigEnv(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "sqlite"

[debounce]
interval = "250ms"

[policy]
file = "/etc/pastesync/policy.toml"

[keyring]
backend = "file"
file_dir = "/tmp/keys"
`), 0o644))
	t.Setenv("PASTESYNC_CONFIG", path)
	t.Setenv("PASTESYNC_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce.Interval)
	assert.Equal(t, "/etc/pastesync/policy.toml", cfg.Policy.File)
	assert.Equal(t, "file", cfg.Keyring.Backend)
	assert.Equal(t, "/tmp/keys", cfg.Keyring.FileDir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfigLoad_InvalidBackend(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PASTESYNC_STORAGE_BACKEND", "ftp")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := config.Config{
		Storage:  config.StorageConfig{Backend: config.BackendFile},
		Debounce: config.DebounceConfig{Interval: 0},
	}
	assert.Error(t, cfg.Validate())

	cfg.Debounce.Interval = time.Second
	assert.NoError(t, cfg.Validate())
}
