package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"pastesync/internal/events"
)

// EventEmitterService streams change records as JSON lines while a stream is
// running. Records observed before StartStream or after StopStream are dropped.
type EventEmitterService struct {
	mu      sync.Mutex
	out     io.Writer
	running bool
}

func NewEventEmitterService(out io.Writer) *EventEmitterService {
	return &EventEmitterService{out: out}
}

func (e *EventEmitterService) StartStream() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.out == nil || e.running {
		return false
	}
	e.running = true
	return true
}

func (e *EventEmitterService) EmitEvent(change events.Change) error {
	if e == nil || e.out == nil {
		return errors.New("the emitter is not initialized")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return nil
	}
	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	_, err = fmt.Fprintln(e.out, string(data))
	return err
}

// Observer adapts the emitter for SyncDeps.Observer. Write failures are
// dropped.
func (e *EventEmitterService) Observer() events.Observer {
	return func(c events.Change) {
		_ = e.EmitEvent(c)
	}
}

func (e *EventEmitterService) StopStream() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
}
