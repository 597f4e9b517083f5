package asyncrt

import (
	"io"
	"log/slog"
	"sync"
)

// registryEntry is the live state of one suspended await: the resume
// closure the root hands back to the host, and an optional release hook
// run when the entry is canceled.
type registryEntry struct {
	resume   Resume
	onCancel func()
}

// Root is the outermost implementation of Capability (spec §4.3,
// component C5). It owns the global AwaitRegistry, routes raw host
// callbacks, enforces the completion-flag contract, and converts Cancel
// into delivery of ErrCancel to each targeted pending await.
//
// Grounded on the teacher's *Manager: a single sync.Map keyed registry
// mutated only through atomic Load/Store/Delete, exactly the
// concurrency idiom manager.go uses for tasks/tasksCancel.
type Root struct {
	alloc  widAllocator
	awaits sync.Map // Wid -> *registryEntry
	logger *slog.Logger
}

var _ Capability = (*Root)(nil)

// NewRoot creates a new root handler. Parallel top-level invocations
// should each create their own Root — the registry is scoped to one
// handler instance, not process-wide (spec's Design Notes, "Global
// state").
func NewRoot(opts ...RootOption) *Root {
	r := &Root{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = discardLogger()
	}
	return r
}

// AwaitID returns a fresh Wid. Pure allocation; never suspends.
func (r *Root) AwaitID() Wid {
	return r.alloc.alloc()
}

// Await registers wid (unless it is WidExit) and calls setup(cb) once.
// It blocks until cb is invoked with Done == true for this wid; callback
// invocations that arrive after the wid has already been removed from
// the registry (delivered, or canceled) are silently dropped — the only
// safe semantics for a host callback that may fire after its owner has
// moved on (spec §4.3 rationale).
func (r *Root) Await(setup func(Resume), wid Wid, opts ...AwaitOption) AwaitResult {
	cfg := buildAwaitConfig(opts)
	ch := make(chan AwaitResult, 1)
	var once sync.Once

	cb := func(res AwaitResult) {
		if wid != WidExit {
			if _, ok := r.awaits.Load(wid); !ok {
				return // dropped: already completed or canceled
			}
			if res.Done {
				r.awaits.Delete(wid)
			}
		}
		if !res.Done {
			return // intermediate resumption: side effects only
		}
		once.Do(func() { ch <- res })
	}

	if wid != WidExit {
		r.awaits.Store(wid, &registryEntry{resume: cb, onCancel: cfg.onCancel})
	}

	setup(cb)

	if wid == WidExit {
		select {} // a strand suspended on wid-exit never resumes
	}

	return <-ch
}

// Cancel delivers a Cancel outcome to every still-pending await among
// targets (or every live await, if targets is nil). It does not modify
// the registry directly — removal happens inside each entry's resume
// closure, the same path normal completion uses, which is what makes a
// repeated Cancel call a no-op (spec property 5: cancel idempotence).
func (r *Root) Cancel(targets []Wid) {
	entries := make(map[Wid]*registryEntry)

	if targets == nil {
		r.awaits.Range(func(key, value any) bool {
			entries[key.(Wid)] = value.(*registryEntry)
			return true
		})
	} else {
		for _, w := range targets {
			if v, ok := r.awaits.Load(w); ok {
				entries[w] = v.(*registryEntry)
			}
		}
	}

	for w, e := range entries {
		if e.onCancel != nil {
			e.onCancel()
		}
		r.logger.Debug("await canceled", slog.Uint64("wid", uint64(w)))
		e.resume(errorResult(w, ErrCancel))
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
