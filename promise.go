package asyncrt

import "sync"

// Promise is a single-assignment cell (spec §3). Its state is either
// Pending, with an ordered list of one-shot listeners, or Resolved,
// terminal. Grounded on other_examples/configcat-go-sdk's AsyncResult:
// same pending/resolved state machine, same choice of firing listeners
// synchronously, from within Resolve (spec §9's Open Question, resolved
// here in favor of synchronous delivery). The lock is released before
// the listeners run.
type Promise struct {
	mu        sync.Mutex
	resolved  bool
	value     any
	listeners []func(any)
}

// NewPromise creates a new, pending Promise.
func NewPromise() *Promise {
	return &Promise{}
}

// Resolve transitions p from Pending to Resolved, invoking every
// listener attached so far, in the order they were attached (spec
// property 3: FIFO listener delivery). Resolving an already-resolved
// promise returns ErrPromiseResolved and has no other effect — in
// particular it does not re-notify listeners.
func (p *Promise) Resolve(v any) error {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return ErrPromiseResolved
	}
	p.resolved = true
	p.value = v
	listeners := p.listeners
	p.listeners = nil
	p.mu.Unlock()

	for _, l := range listeners {
		l(v)
	}
	return nil
}

// Await suspends the calling strand until p is resolved, then returns
// its value. If p is already resolved, it returns immediately without
// suspending.
func (p *Promise) Await(s *Strand) any {
	p.mu.Lock()
	if p.resolved {
		v := p.value
		p.mu.Unlock()
		return v
	}
	p.mu.Unlock()

	wid := s.Cap.AwaitID()
	result := s.Cap.Await(func(raw Resume) {
		p.mu.Lock()
		if p.resolved {
			v := p.value
			p.mu.Unlock()
			raw(AwaitResult{Outcome: Outcome{Value: v}, Done: true, Wid: wid})
			return
		}
		p.listeners = append(p.listeners, func(v any) {
			raw(AwaitResult{Outcome: Outcome{Value: v}, Done: true, Wid: wid})
		})
		p.mu.Unlock()
	}, wid)

	return result.Outcome.Value
}
