// Package shortcuts holds the ordered, id-unique collection of custom paste
// actions and the rules for naming new entries.
package shortcuts

import (
	"fmt"
	"strconv"
	"strings"

	"pastesync/internal/models"
)

// DefaultNamePrefix is used when a caller adds an item without a prefix.
const DefaultNamePrefix = "New Shortcut"

// Collection keeps shortcut items in display order. It is not safe for
// concurrent use; the owner serializes access.
type Collection struct {
	items    []*models.ShortcutItem
	onChange models.ChangeFunc
}

// NewCollection builds a collection from persisted values. onChange is
// attached to every item and receives per-field notifications.
func NewCollection(initial []models.Shortcut, onChange models.ChangeFunc) *Collection {
	c := &Collection{onChange: onChange}
	c.Reset(initial)
	return c
}

// Reset replaces every item with the given values.
func (c *Collection) Reset(values []models.Shortcut) {
	c.items = make([]*models.ShortcutItem, 0, len(values))
	for _, v := range values {
		c.items = append(c.items, models.NewShortcutItem(v, c.onChange))
	}
}

func (c *Collection) Len() int { return len(c.items) }

// Add appends a new item with id max+1 (0 when empty) and a name one past the
// highest numeric suffix already used with namePrefix.
func (c *Collection) Add(namePrefix string) models.Shortcut {
	if namePrefix == "" {
		namePrefix = DefaultNamePrefix
	}
	item := models.NewShortcutItem(models.Shortcut{
		ID:   c.nextID(),
		Name: NextName(c.names(), namePrefix),
	}, c.onChange)
	c.items = append(c.items, item)
	return item.Snapshot()
}

// Remove deletes the item with the given id, keeping the order of the rest.
func (c *Collection) Remove(id int) error {
	idx := c.index(id)
	if idx < 0 {
		return fmt.Errorf("shortcuts: remove %d: %w", id, models.ErrNotFound)
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return nil
}

// UpdateFrom copies the editable fields of modified into the item with id.
// The id itself never changes. It returns the fields that changed.
func (c *Collection) UpdateFrom(id int, modified models.Shortcut) ([]string, error) {
	item, err := c.lookup(id)
	if err != nil {
		return nil, fmt.Errorf("shortcuts: update %d: %w", id, err)
	}
	return item.Update(modified), nil
}

// Rename sets the display name of the item with id.
func (c *Collection) Rename(id int, name string) (bool, error) {
	item, err := c.lookup(id)
	if err != nil {
		return false, fmt.Errorf("shortcuts: rename %d: %w", id, err)
	}
	return item.SetName(name), nil
}

// Resolve returns a copy of the first item whose id matches.
func (c *Collection) Resolve(id int) (models.Shortcut, error) {
	item, err := c.lookup(id)
	if err != nil {
		return models.Shortcut{}, fmt.Errorf("shortcuts: resolve %d: %w", id, err)
	}
	return item.Snapshot(), nil
}

// Snapshot returns detached copies of all items in order.
func (c *Collection) Snapshot() []models.Shortcut {
	out := make([]models.Shortcut, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Snapshot())
	}
	return out
}

func (c *Collection) lookup(id int) (*models.ShortcutItem, error) {
	idx := c.index(id)
	if idx < 0 {
		return nil, models.ErrNotFound
	}
	return c.items[idx], nil
}

func (c *Collection) index(id int) int {
	for i, item := range c.items {
		if item.ID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection) nextID() int {
	maxID := -1
	for _, item := range c.items {
		if item.ID() > maxID {
			maxID = item.ID()
		}
	}
	return maxID + 1
}

func (c *Collection) names() []string {
	names := make([]string, 0, len(c.items))
	for _, item := range c.items {
		names = append(names, item.Name())
	}
	return names
}

// NextName returns "<prefix> <n>" where n is one more than the largest integer
// suffix found on names starting with prefix. Names whose remainder is not an
// integer are ignored.
func NextName(existing []string, prefix string) string {
	highest := 0
	for _, name := range existing {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(name[len(prefix):]))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s %d", prefix, highest+1)
}
