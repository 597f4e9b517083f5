package asyncrt

import (
	"errors"
	"testing"
	"time"
)

var errInjected = errors.New("injected failure")

func TestAwait0(t *testing.T) {
	s, _, host := newTestStrand()
	done := make(chan error, 1)
	go func() {
		done <- Await0(s, func(resume func()) {
			host.SetTimeout(resume, testWait)
		})
	}()
	host.WaitPending(1, testTimeout)
	host.Advance(testWait)
	assertNoError(t, <-done)
}

func TestAwait1SingleResume(t *testing.T) {
	s, _, host := newTestStrand()
	type result struct {
		v   any
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := Await1(s, func(resume func(v any)) {
			host.SetTimeout(func() { resume("value") }, testWait)
		})
		done <- result{v, err}
	}()
	host.WaitPending(1, testTimeout)
	host.Advance(testWait)
	r := <-done
	assertNoError(t, r.err)
	assertEqual(t, r.v, "value")
}

func TestAwait1MultipleResumes(t *testing.T) {
	s, _, host := newTestStrand()
	type result struct {
		v   any
		err error
	}
	done := make(chan result, 1)
	var resume func(v any)
	go func() {
		v, err := Await1(s, func(r func(v any)) {
			resume = r
			host.SetTimeout(func() { resume(1) }, time.Millisecond)
		}, 3)
		done <- result{v, err}
	}()
	host.WaitPending(1, testTimeout)
	host.Advance(time.Millisecond)

	resume(2)
	resume(3)

	r := <-done
	assertNoError(t, r.err)
	assertEqual(t, r.v, 3)
}

func TestAwaitXErrorForcesDone(t *testing.T) {
	s, _, host := newTestStrand()
	boom := errInjected
	type result struct {
		v   any
		err error
	}
	done := make(chan result, 1)
	var resume func(v any, err error)
	go func() {
		v, err := AwaitX(s, func(r func(v any, err error)) {
			resume = r
			host.SetTimeout(func() { resume(nil, boom) }, time.Millisecond)
		}, 5)
		done <- result{v, err}
	}()
	host.WaitPending(1, testTimeout)
	host.Advance(time.Millisecond)

	r := <-done
	assertError(t, r.err, boom)

	// a resume arriving after the error-forced Done must be inert
	resume(99, nil)
}

func TestAwaitExn0(t *testing.T) {
	s, _, host := newTestStrand()
	done := make(chan error, 1)
	go func() {
		done <- AwaitExn0(s, func(resume func(err error)) {
			host.SetTimeout(func() { resume(nil) }, testWait)
		})
	}()
	host.WaitPending(1, testTimeout)
	host.Advance(testWait)
	assertNoError(t, <-done)
}

func TestAwaitExn1(t *testing.T) {
	s, _, host := newTestStrand()
	type result struct {
		v   any
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := AwaitExn1(s, func(resume func(v any, err error)) {
			host.SetTimeout(func() { resume("ok", nil) }, testWait)
		})
		done <- result{v, err}
	}()
	host.WaitPending(1, testTimeout)
	host.Advance(testWait)
	r := <-done
	assertNoError(t, r.err)
	assertEqual(t, r.v, "ok")
}
