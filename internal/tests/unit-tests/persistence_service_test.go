package unit_tests

import (
	"encoding/json"
	"errors"
	"testing"

	"pastesync/internal/models"
	"pastesync/internal/services"
	"pastesync/internal/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeShortcuts_Format(t *testing.T) {
	content, err := services.EncodeShortcuts([]models.Shortcut{
		{ID: 0, Name: "Summarize", Prompt: "Summarize this", Model: "gpt-4o"},
	})
	require.NoError(t, err)

	want := `{
  "value": [
    {
      "Id": 0,
      "Name": "Summarize",
      "Prompt": "Summarize this",
      "Model": "gpt-4o"
    }
  ]
}`
	assert.Equal(t, want, content)
}

func TestEncodeShortcuts_NilIsEmptyArray(t *testing.T) {
	content, err := services.EncodeShortcuts(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": []}`, content)
}

func TestShortcuts_RoundTrip(t *testing.T) {
	list := []models.Shortcut{
		{ID: 4, Name: "B", Prompt: "second \"quoted\"", Model: "m2"},
		{ID: 1, Name: "A", Prompt: "first\nline", Model: ""},
		{ID: 9, Name: "ü", Prompt: "", Model: "m3"},
	}
	content, err := services.EncodeShortcuts(list)
	require.NoError(t, err)

	decoded, err := services.DecodeShortcuts(content)
	require.NoError(t, err)
	assert.Equal(t, list, decoded)
}

func TestPersistenceGateway_SaveShortcuts_WritesShortcutFile(t *testing.T) {
	store := &mocks.StorageMock{}
	gateway := services.NewPersistenceGateway(store, models.ModuleName)

	require.NoError(t, gateway.SaveShortcuts([]models.Shortcut{{ID: 1, Name: "x"}}))

	content, ok := store.Docs[models.ModuleName+"/"+models.ShortcutsFileName]
	require.True(t, ok)
	assert.JSONEq(t, `{"value":[{"Id":1,"Name":"x","Prompt":"","Model":""}]}`, content)
}

func TestPersistenceGateway_SaveSettings_WritesPrimaryFile(t *testing.T) {
	store := &mocks.StorageMock{}
	gateway := services.NewPersistenceGateway(store, models.ModuleName)

	settings := models.DefaultModuleSettings()
	settings.Properties.ShowCustomPreview = true
	settings.Properties.Shortcuts.Value = []models.Shortcut{{ID: 2, Name: "y"}}
	require.NoError(t, gateway.SaveSettings(settings))

	content, ok := store.Docs[models.ModuleName+"/settings.json"]
	require.True(t, ok)

	var decoded models.ModuleSettings
	require.NoError(t, json.Unmarshal([]byte(content), &decoded))
	assert.Equal(t, settings, decoded)
}

func TestPersistenceGateway_WriteErrorPropagates(t *testing.T) {
	ioErr := errors.New("disk full")
	store := &mocks.StorageMock{
		WriteFunc: func(module, fileName, content string) error { return ioErr },
	}
	gateway := services.NewPersistenceGateway(store, models.ModuleName)

	assert.ErrorIs(t, gateway.SaveShortcuts(nil), ioErr)
	assert.ErrorIs(t, gateway.SaveSettings(models.DefaultModuleSettings()), ioErr)
}

func TestPersistenceGateway_Load_DefaultsWhenMissing(t *testing.T) {
	gateway := services.NewPersistenceGateway(&mocks.StorageMock{}, models.ModuleName)

	settings, err := gateway.Load()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultModuleSettings(), settings)
}

func TestPersistenceGateway_Load_SeedsFromShortcutFile(t *testing.T) {
	store := &mocks.StorageMock{}
	gateway := services.NewPersistenceGateway(store, models.ModuleName)
	require.NoError(t, gateway.SaveShortcuts([]models.Shortcut{{ID: 3, Name: "only file"}}))

	settings, err := gateway.Load()
	require.NoError(t, err)
	assert.Equal(t, []models.Shortcut{{ID: 3, Name: "only file"}}, settings.Properties.Shortcuts.Value)
	assert.Equal(t, models.DefaultAdvancedPasteUIShortcut, settings.Properties.AdvancedPasteUIShortcut)
}

func TestPersistenceGateway_Load_ReadsSavedSettings(t *testing.T) {
	store := &mocks.StorageMock{}
	gateway := services.NewPersistenceGateway(store, models.ModuleName)

	saved := models.DefaultModuleSettings()
	saved.Properties.PasteAsJSONShortcut = models.HotkeySettings{Ctrl: true, Alt: true, Code: 'J', Key: "J"}
	saved.Properties.Shortcuts.Value = []models.Shortcut{{ID: 0, Name: "a"}, {ID: 1, Name: "b"}}
	require.NoError(t, gateway.SaveSettings(saved))

	loaded, err := gateway.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestPersistenceGateway_Load_CorruptSettings(t *testing.T) {
	store := &mocks.StorageMock{Docs: map[string]string{models.ModuleName + "/settings.json": "{not json"}}
	gateway := services.NewPersistenceGateway(store, models.ModuleName)

	_, err := gateway.Load()
	assert.Error(t, err)
}
