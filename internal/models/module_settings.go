package models

// ModuleName identifies the module in storage paths and IPC envelopes.
const ModuleName = "AdvancedPaste"

// ShortcutsFileName is the file the shortcut list is written to, next to the
// module's primary settings file.
const ShortcutsFileName = "paste.json"

// SettingsFileName is the module's primary settings file.
const SettingsFileName = "settings.json"

// Properties holds the user-editable module settings.
type Properties struct {
	AdvancedPasteUIShortcut  HotkeySettings `json:"advanced-paste-ui-hotkey"`
	PasteAsPlainTextShortcut HotkeySettings `json:"paste-as-plain-hotkey"`
	PasteAsMarkdownShortcut  HotkeySettings `json:"paste-as-markdown-hotkey"`
	PasteAsJSONShortcut      HotkeySettings `json:"paste-as-json-hotkey"`
	ShowCustomPreview        bool           `json:"ShowCustomPreview"`
	Shortcuts                ShortcutList   `json:"custom-actions"`
}

// Hotkey returns the chord configured for slot.
func (p *Properties) Hotkey(slot HotkeySlot) HotkeySettings {
	switch slot {
	case SlotAdvancedPasteUI:
		return p.AdvancedPasteUIShortcut
	case SlotPasteAsPlainText:
		return p.PasteAsPlainTextShortcut
	case SlotPasteAsMarkdown:
		return p.PasteAsMarkdownShortcut
	case SlotPasteAsJSON:
		return p.PasteAsJSONShortcut
	}
	return HotkeySettings{}
}

// SetHotkey assigns the chord for slot and reports whether slot is known.
func (p *Properties) SetHotkey(slot HotkeySlot, h HotkeySettings) bool {
	switch slot {
	case SlotAdvancedPasteUI:
		p.AdvancedPasteUIShortcut = h
	case SlotPasteAsPlainText:
		p.PasteAsPlainTextShortcut = h
	case SlotPasteAsMarkdown:
		p.PasteAsMarkdownShortcut = h
	case SlotPasteAsJSON:
		p.PasteAsJSONShortcut = h
	default:
		return false
	}
	return true
}

// ModuleSettings is the full settings document persisted for the module and
// carried in settings-changed IPC messages.
type ModuleSettings struct {
	Name       string     `json:"name"`
	Version    string     `json:"version"`
	Properties Properties `json:"properties"`
}

// DefaultModuleSettings returns settings with default hotkeys and no shortcuts.
func DefaultModuleSettings() ModuleSettings {
	return ModuleSettings{
		Name:    ModuleName,
		Version: "1",
		Properties: Properties{
			AdvancedPasteUIShortcut:  DefaultAdvancedPasteUIShortcut,
			PasteAsPlainTextShortcut: DefaultPasteAsPlainTextShortcut,
			Shortcuts:                ShortcutList{Value: []Shortcut{}},
		},
	}
}

// EnabledModules is the per-module enablement block of the general settings.
type EnabledModules struct {
	AdvancedPaste bool `json:"AdvancedPaste"`
}

// GeneralSettings is the host-wide settings object sent when the module's
// general enablement changes.
type GeneralSettings struct {
	Enabled EnabledModules `json:"enabled"`
}
