// Package debounce coalesces bursts of "settings changed" signals into a
// single flush after a quiet interval.
package debounce

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultInterval is the quiet period before a flush fires.
const DefaultInterval = 500 * time.Millisecond

// State of the pending flush slot.
type State int

const (
	Idle State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// FlushFunc persists and publishes the current settings.
type FlushFunc func() error

// Notifier holds at most one pending flush. Signal may be called from any
// goroutine; the flush runs on the timer goroutine. One mutex guards arming,
// cancelling and firing, so at most one flush runs at a time and a flush never
// fires after Dispose returns.
type Notifier struct {
	mu         sync.Mutex
	debounced  func(f func())
	flush      FlushFunc
	logger     *slog.Logger
	state      State
	generation uint64
	disposed   bool
}

func NewNotifier(interval time.Duration, flush FlushFunc, logger *slog.Logger) *Notifier {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		debounced: debounce.New(interval),
		flush:     flush,
		logger:    logger,
	}
}

// Signal arms the flush, or restarts the countdown if it is already armed.
func (n *Notifier) Signal() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return
	}
	n.generation++
	gen := n.generation
	n.state = Armed
	n.debounced(func() { n.fire(gen) })
}

// FlushNow cancels any pending countdown and runs the flush immediately.
func (n *Notifier) FlushNow() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return nil
	}
	n.cancelLocked()
	return n.flush()
}

// State reports whether a flush is pending.
func (n *Notifier) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Dispose cancels any pending flush. Later signals are ignored.
func (n *Notifier) Dispose() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return
	}
	n.cancelLocked()
	n.disposed = true
}

func (n *Notifier) cancelLocked() {
	if n.state != Armed {
		return
	}
	// Invalidate the timer that may already be waiting on the lock, and
	// replace the pending one with a no-op so it stops.
	n.generation++
	n.state = Idle
	n.debounced(func() {})
}

func (n *Notifier) fire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed || gen != n.generation {
		return
	}
	n.state = Idle
	if err := n.flush(); err != nil {
		n.logger.Error("debounced settings flush failed", "error", err)
	}
}
