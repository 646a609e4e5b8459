package events

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"pastesync/internal/models"
)

// Sender is the fire-and-forget channel to the host process. The return
// value is only used for diagnostics.
type Sender interface {
	Send(message string) int
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(message string) int

func (f SenderFunc) Send(message string) int { return f(message) }

// NopSender drops every message.
var NopSender Sender = SenderFunc(func(string) int { return 0 })

// WriterSender writes one message per line to w.
type WriterSender struct {
	mu     sync.Mutex
	w      io.Writer
	logger *slog.Logger
}

func NewWriterSender(w io.Writer, logger *slog.Logger) *WriterSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &WriterSender{w: w, logger: logger}
}

func (s *WriterSender) Send(message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := fmt.Fprintln(s.w, message)
	if err != nil {
		s.logger.Warn("ipc send failed", "error", err)
		return -1
	}
	return n
}

type moduleEnvelope struct {
	PowerToys map[string]models.ModuleSettings `json:"powertoys"`
}

type generalEnvelope struct {
	General models.GeneralSettings `json:"general"`
}

// ModuleSettingsMessage wraps settings as {"powertoys": {"<module>": settings}}.
func ModuleSettingsMessage(module string, settings models.ModuleSettings) (string, error) {
	data, err := json.Marshal(moduleEnvelope{PowerToys: map[string]models.ModuleSettings{module: settings}})
	if err != nil {
		return "", fmt.Errorf("events: encode module settings: %w", err)
	}
	return string(data), nil
}

// GeneralSettingsMessage wraps general settings as {"general": settings}.
func GeneralSettingsMessage(general models.GeneralSettings) (string, error) {
	data, err := json.Marshal(generalEnvelope{General: general})
	if err != nil {
		return "", fmt.Errorf("events: encode general settings: %w", err)
	}
	return string(data), nil
}
