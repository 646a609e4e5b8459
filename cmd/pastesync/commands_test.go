package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastesync/internal/models"
)

func setupCLIEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("PASTESYNC_STORAGE_ROOT", filepath.Join(dir, "settings"))
	t.Setenv("PASTESYNC_DATABASE_PATH", filepath.Join(dir, "pastesync.db"))
	t.Setenv("PASTESYNC_KEYRING_BACKEND", "file")
	t.Setenv("PASTESYNC_KEYRING_FILE_DIR", filepath.Join(dir, "keyring"))
	t.Setenv("PASTESYNC_KEYRING_PASSWORD", "test")
	return dir
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	// Flag variables outlive a single Execute.
	verbose, ipcQuiet, showEvents = false, false, false
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(bytes.NewReader(nil))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func listShortcuts(t *testing.T) []models.Shortcut {
	t.Helper()
	out, _, err := runCLI(t, "list", "--quiet-ipc")
	require.NoError(t, err)
	var list models.ShortcutList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	return list.Value
}

func TestCLI_ShortcutLifecycle(t *testing.T) {
	dir := setupCLIEnv(t)

	out, errOut, err := runCLI(t, "add", "Summarize")
	require.NoError(t, err)
	assert.Contains(t, errOut, `added 0 "Summarize 1"`)
	// Shutdown flushes the pending settings to the host.
	assert.Contains(t, out, `{"powertoys":{"AdvancedPaste":`)

	_, err = os.Stat(filepath.Join(dir, "settings", models.ModuleName, models.ShortcutsFileName))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "settings", models.ModuleName, models.SettingsFileName))
	require.NoError(t, err)

	_, _, err = runCLI(t, "add", "Summarize", "--quiet-ipc")
	require.NoError(t, err)
	_, _, err = runCLI(t, "rename", "0", "Digest", "--quiet-ipc")
	require.NoError(t, err)

	assert.Equal(t, []models.Shortcut{
		{ID: 0, Name: "Digest"},
		{ID: 1, Name: "Summarize 2"},
	}, listShortcuts(t))

	_, _, err = runCLI(t, "delete", "0", "--quiet-ipc")
	require.NoError(t, err)
	_, _, err = runCLI(t, "delete", "0", "--quiet-ipc")
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, []models.Shortcut{{ID: 1, Name: "Summarize 2"}}, listShortcuts(t))
}

func TestCLI_DisablePersistsGeneralSettings(t *testing.T) {
	setupCLIEnv(t)

	out, _, err := runCLI(t, "disable")
	require.NoError(t, err)
	assert.Contains(t, out, `{"general":{"enabled":{"AdvancedPaste":false}}}`)

	out, _, err = runCLI(t, "status", "--quiet-ipc")
	require.NoError(t, err)
	assert.Contains(t, out, "enabled:              false")
}

func TestCLI_Hotkey(t *testing.T) {
	setupCLIEnv(t)

	out, errOut, err := runCLI(t, "hotkey", "json", "Ctrl+V")
	require.NoError(t, err)
	assert.Contains(t, out, `"paste-as-json-hotkey":{"win":false,"ctrl":true`)
	assert.Contains(t, errOut, "conflicts with the system paste shortcut")

	_, _, err = runCLI(t, "hotkey", "html", "Ctrl+H")
	assert.Error(t, err)
	_, _, err = runCLI(t, "hotkey", "json", "Ctrl+Nope")
	assert.Error(t, err)
}

func TestParseOnOff(t *testing.T) {
	on, err := parseOnOff("ON")
	require.NoError(t, err)
	assert.True(t, on)
	off, err := parseOnOff("0")
	require.NoError(t, err)
	assert.False(t, off)
	_, err = parseOnOff("maybe")
	assert.Error(t, err)
}
