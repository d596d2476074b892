package player

import (
	"context"
	"sync"
)

// Availability is a one-shot readiness latch for the underlying player
// runtime, which only becomes usable after the window is visible and libmpv
// is initialized. Signal is idempotent and any number of waiters compose:
// waiters registered before or after the signal all observe readiness.
type Availability struct {
	once sync.Once
	ch   chan struct{}
}

func NewAvailability() *Availability {
	return &Availability{ch: make(chan struct{})}
}

// Signal marks the runtime available. Safe to call more than once.
func (a *Availability) Signal() {
	a.once.Do(func() { close(a.ch) })
}

// Ready reports whether the runtime is available without blocking.
func (a *Availability) Ready() bool {
	select {
	case <-a.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until the runtime is available or the context is done.
// Returns immediately when already available.
func (a *Availability) Wait(ctx context.Context) error {
	select {
	case <-a.ch:
		return nil
	default:
	}
	select {
	case <-a.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
