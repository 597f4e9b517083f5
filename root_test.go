package asyncrt

import (
	"sync/atomic"
	"testing"
)

func TestRootAwaitIDsAreUnique(t *testing.T) {
	r := NewRoot()
	seen := make(map[Wid]bool)
	for i := 0; i < 1000; i++ {
		wid := r.AwaitID()
		if seen[wid] {
			t.Fatalf("duplicate wid %d", wid)
		}
		seen[wid] = true
	}
}

func TestRootAwaitDeliversValue(t *testing.T) {
	r := NewRoot()
	wid := r.AwaitID()
	result := r.Await(func(cb Resume) {
		cb(AwaitResult{Outcome: Outcome{Value: 42}, Done: true, Wid: wid})
	}, wid)
	assertNoError(t, result.Outcome.Err)
	assertEqual(t, result.Outcome.Value, 42)
}

// At-most-one-resume: a resume callback invoked again after Done must
// not be observable — the blocked Await call already returned once.
func TestRootAtMostOneResume(t *testing.T) {
	r := NewRoot()
	wid := r.AwaitID()
	var saved Resume
	result := r.Await(func(cb Resume) {
		saved = cb
		cb(AwaitResult{Outcome: Outcome{Value: "first"}, Done: true, Wid: wid})
	}, wid)
	assertEqual(t, result.Outcome.Value, "first")

	// A late, duplicate resume for a wid already removed from the
	// registry must be silently dropped, not panic or deadlock.
	saved(AwaitResult{Outcome: Outcome{Value: "second"}, Done: true, Wid: wid})
}

func TestRootCancelDeliversErrCancel(t *testing.T) {
	r := NewRoot()
	wid := r.AwaitID()

	registered := make(chan struct{})
	done := make(chan AwaitResult, 1)
	go func() {
		done <- r.Await(func(cb Resume) {
			close(registered) // never resumes on its own; only Cancel resumes it
		}, wid)
	}()

	<-registered
	r.Cancel([]Wid{wid})
	result := <-done
	assertError(t, result.Outcome.Err, ErrCancel)
}

// Cancel idempotence (spec property 5): canceling the same wid twice
// must not panic, double-deliver, or otherwise misbehave.
func TestRootCancelIsIdempotent(t *testing.T) {
	r := NewRoot()
	wid := r.AwaitID()
	var delivered int32

	registered := make(chan struct{})
	done := make(chan struct{})
	go func() {
		r.Await(func(cb Resume) { close(registered) }, wid)
		atomic.AddInt32(&delivered, 1)
		close(done)
	}()

	<-registered
	r.Cancel([]Wid{wid})
	<-done
	r.Cancel([]Wid{wid}) // no pending entry left; must be a no-op

	assertEqual(t, atomic.LoadInt32(&delivered), int32(1))
}

func TestRootCancelTargetsAreScoped(t *testing.T) {
	r := NewRoot()
	widA := r.AwaitID()
	widB := r.AwaitID()

	registeredA := make(chan struct{})
	registeredB := make(chan struct{})
	resA := make(chan AwaitResult, 1)
	resB := make(chan AwaitResult, 1)
	go func() { resA <- r.Await(func(cb Resume) { close(registeredA) }, widA) }()
	go func() { resB <- r.Await(func(cb Resume) { close(registeredB) }, widB) }()
	<-registeredA
	<-registeredB

	r.Cancel([]Wid{widA})
	a := <-resA
	assertError(t, a.Outcome.Err, ErrCancel)

	select {
	case <-resB:
		t.Fatal("widB should not have been canceled")
	default:
	}

	// clean up the still-pending widB await so the goroutine doesn't leak
	r.Cancel([]Wid{widB})
	<-resB
}
