package unit_tests

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"pastesync/internal/events"
	"pastesync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleSettingsMessage_Envelope(t *testing.T) {
	settings := models.DefaultModuleSettings()
	settings.Properties.Shortcuts.Value = []models.Shortcut{{ID: 1, Name: "a"}}

	msg, err := events.ModuleSettingsMessage(models.ModuleName, settings)
	require.NoError(t, err)

	var decoded map[string]map[string]models.ModuleSettings
	require.NoError(t, json.Unmarshal([]byte(msg), &decoded))
	assert.Equal(t, settings, decoded["powertoys"][models.ModuleName])
	assert.True(t, strings.HasPrefix(msg, `{"powertoys":{"AdvancedPaste":{"name":"AdvancedPaste"`))
}

func TestGeneralSettingsMessage(t *testing.T) {
	msg, err := events.GeneralSettingsMessage(models.GeneralSettings{Enabled: models.EnabledModules{AdvancedPaste: true}})
	require.NoError(t, err)
	assert.Equal(t, `{"general":{"enabled":{"AdvancedPaste":true}}}`, msg)
}

func TestWriterSender_OneLinePerMessage(t *testing.T) {
	var buf bytes.Buffer
	sender := events.NewWriterSender(&buf, nil)

	assert.Positive(t, sender.Send(`{"a":1}`))
	sender.Send(`{"b":2}`)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", buf.String())
}

func TestNewItemChange(t *testing.T) {
	c := events.NewItemChange(7, models.FieldPrompt)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, events.PropShortcutField, c.Property)
	require.NotNil(t, c.ItemID)
	assert.Equal(t, 7, *c.ItemID)
	assert.Equal(t, models.FieldPrompt, c.Field)
	assert.False(t, c.Timestamp.IsZero())
	assert.NotEqual(t, c.ID, events.NewChange(events.PropShortcuts).ID)
}

func TestChain_SkipsNilAndKeepsOrder(t *testing.T) {
	var got []string
	obs := events.Chain(
		func(c events.Change) { got = append(got, "first:"+c.Property) },
		nil,
		func(c events.Change) { got = append(got, "second:"+c.Property) },
	)
	obs(events.NewChange(events.PropIsEnabled))
	assert.Equal(t, []string{"first:IsEnabled", "second:IsEnabled"}, got)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	events.LogObserver(logger)(events.NewItemChange(3, models.FieldName))
	out := buf.String()
	assert.Contains(t, out, "settings changed")
	assert.Contains(t, out, "property=Shortcut")
	assert.Contains(t, out, "item=3")
	assert.Contains(t, out, "field=Name")
}
