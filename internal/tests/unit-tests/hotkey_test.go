package unit_tests

import (
	"testing"

	"pastesync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotkeySettings_String(t *testing.T) {
	assert.Equal(t, "Win + Shift + V", models.DefaultAdvancedPasteUIShortcut.String())
	assert.Equal(t, "Win + Ctrl + Alt + V", models.DefaultPasteAsPlainTextShortcut.String())
	assert.Equal(t, "Ctrl + Shift + V", models.SystemPasteChords[1].String())
	assert.Equal(t, "", models.HotkeySettings{}.String())
	assert.Equal(t, "Alt + F5", models.HotkeySettings{Alt: true, Code: 0x74}.String())
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		in   string
		want models.HotkeySettings
	}{
		{"Ctrl+V", models.HotkeySettings{Ctrl: true, Code: 0x56, Key: "V"}},
		{"ctrl + shift + v", models.HotkeySettings{Ctrl: true, Shift: true, Code: 0x56, Key: "V"}},
		{"Win+Alt+F12", models.HotkeySettings{Win: true, Alt: true, Code: 0x7B, Key: "F12"}},
		{"Shift+Space", models.HotkeySettings{Shift: true, Code: 0x20, Key: "Space"}},
		{"Ctrl+1", models.HotkeySettings{Ctrl: true, Code: '1', Key: "1"}},
		{"", models.HotkeySettings{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := models.ParseHotkey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHotkey_Errors(t *testing.T) {
	for _, in := range []string{"Ctrl+", "Ctrl+Shift", "Ctrl+V+B", "Ctrl+Nope", "F25"} {
		_, err := models.ParseHotkey(in)
		assert.Error(t, err, in)
	}
}

func TestHotkeySettings_EmptyAndDefaults(t *testing.T) {
	assert.True(t, models.HotkeySettings{}.IsEmpty())
	assert.False(t, models.HotkeySettings{Ctrl: true}.IsEmpty())
	assert.Equal(t, models.DefaultAdvancedPasteUIShortcut, models.DefaultHotkey(models.SlotAdvancedPasteUI))
	assert.Equal(t, models.DefaultPasteAsPlainTextShortcut, models.DefaultHotkey(models.SlotPasteAsPlainText))
	assert.True(t, models.DefaultHotkey(models.SlotPasteAsMarkdown).IsEmpty())
	assert.True(t, models.DefaultHotkey(models.SlotPasteAsJSON).IsEmpty())
}
