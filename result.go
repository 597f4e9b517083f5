package asyncrt

import "errors"

// ErrCancel is the distinguished Cancel error. A single instance is
// reused for every cancellation so callers can match on it with
// errors.Is.
var ErrCancel = errors.New("Cancel")

// ErrPromiseResolved is returned by Promise.Resolve when called on a
// promise that has already settled.
var ErrPromiseResolved = errors.New("promise was already resolved")

// Outcome is either a raised error or a value, never both.
type Outcome struct {
	Err   error
	Value any
}

// AwaitResult is the triple (outcome, done, wid) described in spec §3.
// Done is a sticky flag: once true for a wid, no further callback on
// that wid may resume computation. An erroneous Outcome always forces
// Done to true.
type AwaitResult struct {
	Outcome Outcome
	Done    bool
	Wid     Wid
}

func errorResult(wid Wid, err error) AwaitResult {
	return AwaitResult{Outcome: Outcome{Err: err}, Done: true, Wid: wid}
}

func valueResult(wid Wid, v any, done bool) AwaitResult {
	return AwaitResult{Outcome: Outcome{Value: v}, Done: done, Wid: wid}
}
