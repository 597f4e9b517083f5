package asyncrt

import (
	"errors"
	"log/slog"
	"time"
)

// cancelableWaitThreshold is the spec §4.7 policy boundary: waits this
// long or shorter are fire-and-forget (not worth cancel bookkeeping),
// longer waits are cancelable.
const cancelableWaitThreshold = 200 * time.Millisecond

// Wait suspends the calling strand for d, choosing the cheapest
// mechanism that satisfies the duration (spec §4.7):
//   - d > 200ms uses CancelableWait, which also clears its host timer
//     when a surrounding cancelable scope cuts it short;
//   - d <= 0 is Yield(0), a single next-tick;
//   - otherwise it's a plain Yield(d), whose host timer is left to fire
//     even when the wait is canceled.
func Wait(s *Strand, d time.Duration) error {
	switch {
	case d > cancelableWaitThreshold:
		return CancelableWait(s, d)
	case d <= 0:
		return Yield(s, 0)
	default:
		return Yield(s, d)
	}
}

// Yield registers a one-shot timeout for d (0 means the next tick) and
// resumes with no value. The host timer is never cleared: a Cancel that
// targets this await still resumes the strand with ErrCancel, and the
// timer later fires into a dropped callback.
func Yield(s *Strand, d time.Duration) error {
	return Await0(s, func(resume func()) {
		if d <= 0 {
			s.Host.SetImmediate(resume)
		} else {
			s.Host.SetTimeout(resume, d)
		}
	})
}

// CancelableWait suspends for d, owning a host timer that is released
// on every exit path — normal expiry, cancellation, or the strand's
// context being done — via the onCancel hook plus a deferred release,
// the scoped acquire/release pattern spec §9's Design Notes recommend
// in place of the source's rcount=2 "synchronous resume with the
// TimerId" trick (see DESIGN.md).
func CancelableWait(s *Strand, d time.Duration) error {
	wid := s.Cap.AwaitID()

	var timerID TimerID
	release := func() { s.Host.ClearTimeout(timerID) }
	defer release()

	stopWatch := make(chan struct{})
	defer close(stopWatch)

	result := s.Cap.Await(func(raw Resume) {
		timerID = s.Host.SetTimeout(func() {
			raw(AwaitResult{Done: true, Wid: wid})
		}, d)

		if s.Ctx != nil {
			go func() {
				select {
				case <-s.Ctx.Done():
					s.Cap.Cancel([]Wid{wid})
				case <-stopWatch:
				}
			}()
		}
	}, wid, WithOnCancel(release))

	return result.Outcome.Err
}

// Exit terminates the calling strand silently: it suspends on WidExit
// and never resumes.
func Exit(s *Strand) {
	s.Cap.Await(func(Resume) {}, WidExit)
}

// OnCancel runs action and, if it fails with ErrCancel, additionally
// runs handler before returning action's (zero-value, error) result.
func OnCancel(handler func(), action func() (any, error)) (any, error) {
	v, err := action()
	if err != nil && errors.Is(err, ErrCancel) {
		handler()
	}
	return v, err
}

// Fork splits the current strand in two: the child runs action,
// sharing the parent's Capability (so a cancel() in the parent's scope
// also reaches the child), swallows any error or panic with a single
// log line, and never returns to the caller. The parent continues
// immediately. Panic recovery, the structured log line, and never
// propagating to the caller are grounded verbatim on the teacher's
// Manager.Async goroutine body.
//
// Dispatch itself — not just the child's first real suspend — is the
// cancelable step, matching spec §8 scenario S5 ("cancelable { fork {
// wait(100ms); record(\"fired\") }; cancel() }" must never record
// "fired"). Fork registers a placeholder wid and defers the child's
// actual start behind one host tick (SetImmediate) rather than calling
// action.Run from a bare `go func` that a sibling Cancel can't reach
// until it happens to get scheduled. Fork blocks until that wid is
// registered, so a Cancel issued the instant Fork returns always finds
// it and — since nothing here runs the action until the host fires the
// tick — always wins before FakeTimerHost-driven tests ever call
// Advance. Against a real wall-clock host this is a strong but not
// absolute guarantee (see DESIGN.md).
func Fork(s *Strand, action Runnable) {
	child := s.WithCap(s.Cap)
	wid := s.Cap.AwaitID()
	registered := make(chan struct{})

	go func() {
		var tickID TimerID
		dispatch := s.Cap.Await(func(raw Resume) {
			tickID = s.Host.SetImmediate(func() {
				raw(AwaitResult{Done: true, Wid: wid})
			})
			close(registered)
		}, wid, WithOnCancel(func() { s.Host.ClearTimeout(tickID) }))

		if dispatch.Outcome.Err != nil {
			s.Logger.Debug("forked strand canceled before it started")
			return
		}

		defer func() {
			if r := recover(); r != nil {
				s.Logger.Error("forked strand panicked", slog.Any("panic", r))
			}
		}()

		if _, err := action.Run(child); err != nil {
			if errors.Is(err, ErrCancel) {
				s.Logger.Debug("forked strand canceled")
			} else {
				s.Logger.Error("forked strand failed", slog.String("error", err.Error()))
			}
		}
	}()

	<-registered
}

// Cancelable runs action under a fresh CancelableScope nested inside s's
// current Capability, giving spec §6's cancelable(action) combinator a
// single-call home the way FirstOf and Interleaved already have theirs,
// instead of requiring every caller to hand-assemble a
// NewCancelableScope plus Strand.WithCap. Within action, cs.Cap.Cancel
// reaches only wids registered during this call (including ones
// registered by a Fork dispatched from inside it), never anything
// outside the scope.
func Cancelable(s *Strand, action Runnable) (any, error) {
	scope := NewCancelableScope(s.Cap)
	child := s.WithCap(scope)
	return action.Run(child)
}

// FirstOf runs a and b concurrently inside a shared cancelable scope.
// Whichever completes first without error cancels its sibling and wins;
// if the first completion observed is itself a Cancel outcome, the
// sibling was the true winner and its result is returned instead (spec
// §4.7: "if the first outcome is a Cancel error, the other strand won").
func FirstOf(s *Strand, a, b Runnable) (any, error) {
	scope := NewCancelableScope(s.Cap)

	type finished struct {
		value any
		err   error
	}
	results := make(chan finished, 2)

	run := func(r Runnable) {
		child := s.WithCap(scope)
		v, err := r.Run(child)
		if err == nil {
			scope.Cancel(nil)
		}
		results <- finished{v, err}
	}

	go run(a)
	go run(b)

	first := <-results
	if first.err != nil && errors.Is(first.err, ErrCancel) {
		second := <-results
		return second.value, second.err
	}
	return first.value, first.err
}

// Timeout runs action under FirstOf against wait(d); it returns
// ok == false (and a nil error) if the wait won, or ok == true with
// action's value otherwise. The losing strand — action on timeout,
// the wait on success — is canceled (spec §4.7).
func Timeout(s *Strand, d time.Duration, action Runnable) (value any, ok bool, err error) {
	type timedOut struct{}

	waiter := RunnableFunc(func(cs *Strand) (any, error) {
		if werr := Wait(cs, d); werr != nil {
			return nil, werr
		}
		return timedOut{}, nil
	})

	v, err := FirstOf(s, waiter, action)
	if err != nil {
		return nil, false, err
	}
	if _, hitTimeout := v.(timedOut); hitTimeout {
		return nil, false, nil
	}
	return v, true, nil
}
