package events

import (
	"time"

	"github.com/google/uuid"
)

// Property names raised by the settings engine.
const (
	PropIsEnabled             = "IsEnabled"
	PropShortcuts             = "Shortcuts"
	PropShortcutField         = "Shortcut"
	PropIsConflictingShortcut = "IsConflictingCopyShortcut"
	PropIsAIEnabled           = "IsOpenAIEnabled"
	PropShowCustomPreview     = "ShowCustomPreview"
	PropClipboardHistory      = "ClipboardHistoryEnabled"
)

// Change is the mutation record handed to the observer registered with the
// engine. ItemID and Field are set only for per-shortcut field changes.
type Change struct {
	ID        string    `json:"id"`
	Property  string    `json:"property"`
	ItemID    *int      `json:"itemId,omitempty"`
	Field     string    `json:"field,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChange creates a property change record.
func NewChange(property string) Change {
	return Change{
		ID:        uuid.NewString(),
		Property:  property,
		Timestamp: time.Now(),
	}
}

// NewItemChange creates a record for one field of one shortcut.
func NewItemChange(itemID int, field string) Change {
	c := NewChange(PropShortcutField)
	c.ItemID = &itemID
	c.Field = field
	return c
}

// Observer receives change records. It is called synchronously on the
// goroutine that made the change.
type Observer func(Change)

// Chain calls every non-nil observer in order.
func Chain(observers ...Observer) Observer {
	return func(c Change) {
		for _, o := range observers {
			if o != nil {
				o(c)
			}
		}
	}
}
