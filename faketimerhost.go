package asyncrt

import (
	"sort"
	"sync"
	"time"
)

// FakeTimerHost is a deterministic, test-driven TimerHost: its clock
// only moves when Advance is called, and due timers fire in the order
// spec §5 requires — earliest-scheduled first, ties broken by
// scheduling order within the same synchronous run. This is the "mocked
// TimerHost whose clock is advanced by the test" spec §8 calls for.
type FakeTimerHost struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  uint64
	seq     uint64
	pending map[TimerID]*fakeTimer
}

type fakeTimer struct {
	due time.Duration
	seq uint64
	cb  func()
}

// NewFakeTimerHost returns a FakeTimerHost whose virtual clock starts at
// zero.
func NewFakeTimerHost() *FakeTimerHost {
	return &FakeTimerHost{pending: make(map[TimerID]*fakeTimer)}
}

func (h *FakeTimerHost) SetTimeout(cb func(), d time.Duration) TimerID {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.seq++
	id := TimerID(h.nextID)
	h.pending[id] = &fakeTimer{due: h.now + d, seq: h.seq, cb: cb}
	return id
}

func (h *FakeTimerHost) SetImmediate(cb func()) TimerID {
	return h.SetTimeout(cb, 0)
}

func (h *FakeTimerHost) ClearTimeout(id TimerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pending, id)
}

// Advance moves the virtual clock forward by d and fires every timer
// whose due time has arrived, in (due, scheduling-order) order. A fired
// callback may itself schedule new immediates/timeouts; those are
// drained within the same Advance call if their due time has also
// arrived, mirroring a host event loop running every ready callback
// before yielding back to the caller.
func (h *FakeTimerHost) Advance(d time.Duration) {
	h.mu.Lock()
	h.now += d
	h.mu.Unlock()

	for {
		h.mu.Lock()
		type ready struct {
			id TimerID
			t  *fakeTimer
		}
		var due []ready
		for id, t := range h.pending {
			if t.due <= h.now {
				due = append(due, ready{id, t})
			}
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].t.due != due[j].t.due {
				return due[i].t.due < due[j].t.due
			}
			return due[i].t.seq < due[j].t.seq
		})
		for _, r := range due {
			delete(h.pending, r.id)
		}
		h.mu.Unlock()

		if len(due) == 0 {
			return
		}
		for _, r := range due {
			r.t.cb()
		}
	}
}

// PendingCount returns the number of timers currently registered and
// not yet fired or cleared.
func (h *FakeTimerHost) PendingCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// WaitPending polls PendingCount until it reaches at least n or timeout
// elapses, returning whether n was reached. Strands run on real
// goroutines even against a fake clock, so tests need a way to know
// a strand has registered its await before calling Advance — the same
// problem other_examples/runreveal-lib's waitTimeout solves for
// goroutine-count barriers.
func (h *FakeTimerHost) WaitPending(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if h.PendingCount() >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}
