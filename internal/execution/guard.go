package execution

import (
	"errors"
	"sync/atomic"
)

// ErrRunActive is returned when a run request arrives while another run
// is in flight. Rejected requests are dropped after notifying the user,
// never queued.
var ErrRunActive = errors.New("a test session is already running")

// Guard serializes run requests: at most one run may be in flight at a
// time. It owns the only shared mutable state in the engine.
type Guard struct {
	active atomic.Bool
}

// NewGuard creates a released Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// TryAcquire attempts to mark a run in flight. Returns false when one
// already is; the rejected caller must not start a process.
func (g *Guard) TryAcquire() bool {
	return g.active.CompareAndSwap(false, true)
}

// Release marks the run finished. Must be called exactly once per
// successful acquire, on every exit path of the guarded operation.
func (g *Guard) Release() {
	g.active.Store(false)
}

// Active reports whether a run is in flight.
func (g *Guard) Active() bool {
	return g.active.Load()
}
