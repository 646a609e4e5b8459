package models

import (
	"fmt"
	"strings"
)

// HotkeySettings is a keybinding chord: modifier keys plus one virtual key code.
type HotkeySettings struct {
	Win   bool   `json:"win"`
	Ctrl  bool   `json:"ctrl"`
	Alt   bool   `json:"alt"`
	Shift bool   `json:"shift"`
	Code  int    `json:"code"`
	Key   string `json:"key"`
}

// HotkeySlot names one of the four configurable keybindings.
type HotkeySlot string

const (
	SlotAdvancedPasteUI  HotkeySlot = "AdvancedPasteUIShortcut"
	SlotPasteAsPlainText HotkeySlot = "PasteAsPlainTextShortcut"
	SlotPasteAsMarkdown  HotkeySlot = "PasteAsMarkdownShortcut"
	SlotPasteAsJSON      HotkeySlot = "PasteAsJsonShortcut"
)

// HotkeySlots lists every slot in display order.
var HotkeySlots = []HotkeySlot{
	SlotAdvancedPasteUI,
	SlotPasteAsPlainText,
	SlotPasteAsMarkdown,
	SlotPasteAsJSON,
}

const vkV = 0x56

var (
	DefaultAdvancedPasteUIShortcut  = HotkeySettings{Win: true, Shift: true, Code: vkV, Key: "V"}
	DefaultPasteAsPlainTextShortcut = HotkeySettings{Win: true, Ctrl: true, Alt: true, Code: vkV, Key: "V"}
)

// SystemPasteChords are the platform copy/paste chords a custom binding must
// not shadow.
var SystemPasteChords = []HotkeySettings{
	{Ctrl: true, Code: vkV, Key: "V"},
	{Ctrl: true, Shift: true, Code: vkV, Key: "V"},
}

// DefaultHotkey returns the chord substituted when a slot is cleared. The
// markdown and json slots default to the empty chord.
func DefaultHotkey(slot HotkeySlot) HotkeySettings {
	switch slot {
	case SlotAdvancedPasteUI:
		return DefaultAdvancedPasteUIShortcut
	case SlotPasteAsPlainText:
		return DefaultPasteAsPlainTextShortcut
	default:
		return HotkeySettings{}
	}
}

// IsEmpty reports whether no modifier and no key are set.
func (h HotkeySettings) IsEmpty() bool {
	return !h.Win && !h.Ctrl && !h.Alt && !h.Shift && h.Code == 0
}

// Equal compares modifiers and key code; the display key is ignored.
func (h HotkeySettings) Equal(o HotkeySettings) bool {
	return h.Win == o.Win && h.Ctrl == o.Ctrl && h.Alt == o.Alt && h.Shift == o.Shift && h.Code == o.Code
}

func (h HotkeySettings) String() string {
	var parts []string
	if h.Win {
		parts = append(parts, "Win")
	}
	if h.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if h.Alt {
		parts = append(parts, "Alt")
	}
	if h.Shift {
		parts = append(parts, "Shift")
	}
	if h.Code > 0 {
		key := h.Key
		if key == "" {
			key = keyName(h.Code)
		}
		parts = append(parts, key)
	}
	return strings.Join(parts, " + ")
}

// ParseHotkey reads chords such as "Ctrl+Shift+V" or "Win + Alt + F5".
// An empty string yields the empty chord.
func ParseHotkey(s string) (HotkeySettings, error) {
	var h HotkeySettings
	s = strings.TrimSpace(s)
	if s == "" {
		return h, nil
	}
	for _, raw := range strings.Split(s, "+") {
		tok := strings.TrimSpace(raw)
		switch strings.ToLower(tok) {
		case "win", "super", "meta":
			h.Win = true
		case "ctrl", "control":
			h.Ctrl = true
		case "alt":
			h.Alt = true
		case "shift":
			h.Shift = true
		case "":
			return HotkeySettings{}, fmt.Errorf("parse hotkey %q: empty key segment", s)
		default:
			if h.Code != 0 {
				return HotkeySettings{}, fmt.Errorf("parse hotkey %q: more than one key", s)
			}
			code, ok := keyCode(tok)
			if !ok {
				return HotkeySettings{}, fmt.Errorf("parse hotkey %q: unknown key %q", s, tok)
			}
			h.Code = code
			h.Key = keyName(code)
		}
	}
	if h.Code == 0 {
		return HotkeySettings{}, fmt.Errorf("parse hotkey %q: missing key", s)
	}
	return h, nil
}

var namedKeys = map[string]int{
	"backspace": 0x08,
	"tab":       0x09,
	"enter":     0x0D,
	"esc":       0x1B,
	"space":     0x20,
	"pageup":    0x21,
	"pagedown":  0x22,
	"end":       0x23,
	"home":      0x24,
	"left":      0x25,
	"up":        0x26,
	"right":     0x27,
	"down":      0x28,
	"insert":    0x2D,
	"delete":    0x2E,
}

var namedKeyLabels = map[int]string{
	0x08: "Backspace",
	0x09: "Tab",
	0x0D: "Enter",
	0x1B: "Esc",
	0x20: "Space",
	0x21: "PageUp",
	0x22: "PageDown",
	0x23: "End",
	0x24: "Home",
	0x25: "Left",
	0x26: "Up",
	0x27: "Right",
	0x28: "Down",
	0x2D: "Insert",
	0x2E: "Delete",
}

func keyCode(tok string) (int, bool) {
	if len(tok) == 1 {
		c := strings.ToUpper(tok)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return int(c), true
		}
	}
	lower := strings.ToLower(tok)
	if code, ok := namedKeys[lower]; ok {
		return code, true
	}
	var n int
	if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && n >= 1 && n <= 24 && lower == fmt.Sprintf("f%d", n) {
		return 0x70 + n - 1, true
	}
	return 0, false
}

func keyName(code int) string {
	switch {
	case (code >= 'A' && code <= 'Z') || (code >= '0' && code <= '9'):
		return string(rune(code))
	case code >= 0x70 && code <= 0x87:
		return fmt.Sprintf("F%d", code-0x70+1)
	}
	if label, ok := namedKeyLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("0x%02X", code)
}
