package models

import "errors"

// ErrNotFound is returned when an operation references a shortcut id that is
// not part of the collection.
var ErrNotFound = errors.New("not found")

// Field names carried by shortcut change notifications.
const (
	FieldName   = "Name"
	FieldPrompt = "Prompt"
	FieldModel  = "Model"
)

// Shortcut is the plain value form of a custom paste action. It is what
// callers read and what gets persisted.
type Shortcut struct {
	ID     int    `json:"Id"`
	Name   string `json:"Name"`
	Prompt string `json:"Prompt"`
	Model  string `json:"Model"`
}

// ShortcutList is the persisted envelope of the shortcut file.
type ShortcutList struct {
	Value []Shortcut `json:"value"`
}

// ChangeFunc is notified with the item id and the field that changed.
type ChangeFunc func(itemID int, field string)

// ShortcutItem is the mutable record owned by a collection. Its id is fixed
// at construction; every other field reports changes through onChange.
type ShortcutItem struct {
	id       int
	name     string
	prompt   string
	model    string
	onChange ChangeFunc
}

func NewShortcutItem(s Shortcut, onChange ChangeFunc) *ShortcutItem {
	return &ShortcutItem{
		id:       s.ID,
		name:     s.Name,
		prompt:   s.Prompt,
		model:    s.Model,
		onChange: onChange,
	}
}

func (i *ShortcutItem) ID() int        { return i.id }
func (i *ShortcutItem) Name() string   { return i.name }
func (i *ShortcutItem) Prompt() string { return i.prompt }
func (i *ShortcutItem) Model() string  { return i.model }

// SetName updates the name and reports whether it changed.
func (i *ShortcutItem) SetName(name string) bool {
	if i.name == name {
		return false
	}
	i.name = name
	i.notify(FieldName)
	return true
}

func (i *ShortcutItem) SetPrompt(prompt string) bool {
	if i.prompt == prompt {
		return false
	}
	i.prompt = prompt
	i.notify(FieldPrompt)
	return true
}

func (i *ShortcutItem) SetModel(model string) bool {
	if i.model == model {
		return false
	}
	i.model = model
	i.notify(FieldModel)
	return true
}

// Update copies the editable fields of modified into the item and returns the
// names of the fields that changed, in Name, Model, Prompt order.
func (i *ShortcutItem) Update(modified Shortcut) []string {
	var changed []string
	if i.SetName(modified.Name) {
		changed = append(changed, FieldName)
	}
	if i.SetModel(modified.Model) {
		changed = append(changed, FieldModel)
	}
	if i.SetPrompt(modified.Prompt) {
		changed = append(changed, FieldPrompt)
	}
	return changed
}

// Snapshot returns a detached copy of the item.
func (i *ShortcutItem) Snapshot() Shortcut {
	return Shortcut{ID: i.id, Name: i.name, Prompt: i.prompt, Model: i.model}
}

func (i *ShortcutItem) notify(field string) {
	if i.onChange != nil {
		i.onChange(i.id, field)
	}
}
