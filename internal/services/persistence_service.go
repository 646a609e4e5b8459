package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"pastesync/internal/models"
	"pastesync/internal/storage"
)

// PersistenceGateway serializes the shortcut list and the full module
// settings to storage. Writes are synchronous and never retried.
type PersistenceGateway interface {
	SaveShortcuts(shortcuts []models.Shortcut) error
	SaveSettings(settings models.ModuleSettings) error
	Load() (models.ModuleSettings, error)
}

type persistenceGateway struct {
	store  storage.Storage
	module string
}

func NewPersistenceGateway(store storage.Storage, module string) PersistenceGateway {
	if module == "" {
		module = models.ModuleName
	}
	return &persistenceGateway{store: store, module: module}
}

// EncodeShortcuts renders {"value": [...]} with two-space indentation.
func EncodeShortcuts(shortcuts []models.Shortcut) (string, error) {
	if shortcuts == nil {
		shortcuts = []models.Shortcut{}
	}
	data, err := json.MarshalIndent(models.ShortcutList{Value: shortcuts}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode shortcuts: %w", err)
	}
	return string(data), nil
}

// DecodeShortcuts parses the shortcut file format.
func DecodeShortcuts(content string) ([]models.Shortcut, error) {
	var list models.ShortcutList
	if err := json.Unmarshal([]byte(content), &list); err != nil {
		return nil, fmt.Errorf("decode shortcuts: %w", err)
	}
	if list.Value == nil {
		list.Value = []models.Shortcut{}
	}
	return list.Value, nil
}

func (g *persistenceGateway) SaveShortcuts(shortcuts []models.Shortcut) error {
	content, err := EncodeShortcuts(shortcuts)
	if err != nil {
		return err
	}
	return g.store.Write(g.module, models.ShortcutsFileName, content)
}

func (g *persistenceGateway) SaveSettings(settings models.ModuleSettings) error {
	if settings.Properties.Shortcuts.Value == nil {
		settings.Properties.Shortcuts.Value = []models.Shortcut{}
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return g.store.Write(g.module, "", string(data))
}

// Load reads the primary settings file. When it does not exist yet the
// defaults are returned, seeded with the shortcut file if one is present.
func (g *persistenceGateway) Load() (models.ModuleSettings, error) {
	settings := models.DefaultModuleSettings()
	settings.Name = g.module

	content, err := g.store.Read(g.module, "")
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(content), &settings); err != nil {
			return models.ModuleSettings{}, fmt.Errorf("decode settings: %w", err)
		}
	case errors.Is(err, storage.ErrNotExist):
		shortcuts, err := g.loadShortcutFile()
		if err != nil {
			return models.ModuleSettings{}, err
		}
		settings.Properties.Shortcuts.Value = shortcuts
	default:
		return models.ModuleSettings{}, err
	}

	if settings.Properties.Shortcuts.Value == nil {
		settings.Properties.Shortcuts.Value = []models.Shortcut{}
	}
	return settings, nil
}

func (g *persistenceGateway) loadShortcutFile() ([]models.Shortcut, error) {
	content, err := g.store.Read(g.module, models.ShortcutsFileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return []models.Shortcut{}, nil
		}
		return nil, err
	}
	return DecodeShortcuts(content)
}
