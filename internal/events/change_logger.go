package events

import (
	"log/slog"
)

// LogObserver returns an observer that writes each change at debug level.
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c Change) {
		attrs := []any{"id", c.ID, "property", c.Property}
		if c.ItemID != nil {
			attrs = append(attrs, "item", *c.ItemID, "field", c.Field)
		}
		logger.Debug("settings changed", attrs...)
	}
}
