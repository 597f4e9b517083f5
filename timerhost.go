package asyncrt

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimerID is an opaque handle returned by TimerHost.SetTimeout, used
// only to call ClearTimeout. Whoever received it must clear it exactly
// once if the timeout is to be canceled before firing.
type TimerID uint64

// TimerHost is the external collaborator (spec §6, component C1): the
// host's deferred-callback-scheduling and cancellation primitives. The
// rest of this module depends only on this interface, never on wall
// time directly, so it can be driven deterministically in tests with
// FakeTimerHost.
type TimerHost interface {
	// SetTimeout fires cb once after d, unless ClearTimeout(id) is
	// called first.
	SetTimeout(cb func(), d time.Duration) TimerID

	// SetImmediate fires cb on the next tick of the host's run loop.
	// Hosts without a dedicated immediate primitive fall back to
	// SetTimeout(cb, 0).
	SetImmediate(cb func()) TimerID

	// ClearTimeout revokes a pending timer. Idempotent: clearing an
	// already-fired or already-cleared id is a no-op.
	ClearTimeout(id TimerID)
}

// realTimerHost is the wall-clock TimerHost, backed by stdlib
// time.AfterFunc. It is the base case, not a stand-in: the spec already
// abstracts the timer entirely behind TimerHost, so there's no third
// party "timer wheel" library to reach for here (see DESIGN.md).
type realTimerHost struct {
	next   atomic.Uint64
	timers sync.Map // TimerID -> *time.Timer
}

// NewRealTimerHost returns a TimerHost backed by the host process's
// wall clock.
func NewRealTimerHost() TimerHost {
	return &realTimerHost{}
}

func (h *realTimerHost) SetTimeout(cb func(), d time.Duration) TimerID {
	id := TimerID(h.next.Add(1))
	t := time.AfterFunc(d, func() {
		h.timers.Delete(id)
		cb()
	})
	h.timers.Store(id, t)
	return id
}

func (h *realTimerHost) SetImmediate(cb func()) TimerID {
	return h.SetTimeout(cb, 0)
}

func (h *realTimerHost) ClearTimeout(id TimerID) {
	if v, ok := h.timers.LoadAndDelete(id); ok {
		v.(*time.Timer).Stop()
	}
}
