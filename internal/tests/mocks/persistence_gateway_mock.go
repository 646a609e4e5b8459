package mocks

import (
	"sync"

	"pastesync/internal/models"
)

type PersistenceGatewayMock struct {
	SaveShortcutsFunc func(shortcuts []models.Shortcut) error
	SaveSettingsFunc  func(settings models.ModuleSettings) error
	LoadFunc          func() (models.ModuleSettings, error)

	mu            sync.Mutex
	ShortcutSaves [][]models.Shortcut
	SettingsSaves []models.ModuleSettings
}

func (m *PersistenceGatewayMock) SaveShortcuts(shortcuts []models.Shortcut) error {
	m.mu.Lock()
	m.ShortcutSaves = append(m.ShortcutSaves, shortcuts)
	m.mu.Unlock()
	if m.SaveShortcutsFunc != nil {
		return m.SaveShortcutsFunc(shortcuts)
	}
	return nil
}

func (m *PersistenceGatewayMock) SaveSettings(settings models.ModuleSettings) error {
	m.mu.Lock()
	m.SettingsSaves = append(m.SettingsSaves, settings)
	m.mu.Unlock()
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(settings)
	}
	return nil
}

func (m *PersistenceGatewayMock) Load() (models.ModuleSettings, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return models.DefaultModuleSettings(), nil
}

func (m *PersistenceGatewayMock) ShortcutSaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ShortcutSaves)
}

func (m *PersistenceGatewayMock) SettingsSaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SettingsSaves)
}

func (m *PersistenceGatewayMock) LastSettings() models.ModuleSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SettingsSaves) == 0 {
		return models.ModuleSettings{}
	}
	return m.SettingsSaves[len(m.SettingsSaves)-1]
}
