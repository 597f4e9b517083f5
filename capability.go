package asyncrt

// Resume is the host-invocable callback handed to a setup function. The
// host (or a combinator acting on the host's behalf) calls it with the
// AwaitResult that should resume — or fail to resume — the suspended
// strand.
type Resume func(AwaitResult)

// Capability is the three-operation contract every handler layer
// implements, either by delegation or by interposition (spec §4.1).
type Capability interface {
	// AwaitID returns a fresh Wid scoped to the enclosing root. Pure
	// allocation; never suspends.
	AwaitID() Wid

	// Await registers wid as pending, then calls setup(cb) exactly
	// once, where cb is a host-invocable Resume. It blocks the calling
	// goroutine until the first invocation of cb whose Done flag is
	// true; all other invocations for the same wid are inert.
	Await(setup func(Resume), wid Wid, opts ...AwaitOption) AwaitResult

	// Cancel cancels every await in the innermost cancelable scope
	// (targets == nil) or exactly the listed wids. It never raises and
	// always returns immediately; cancellation of an already-completed
	// wid is a no-op.
	Cancel(targets []Wid)
}

// AwaitOption carries per-await configuration that doesn't fit the
// setup/wid signature — currently only the onCancel release hook.
type AwaitOption func(*awaitConfig)

type awaitConfig struct {
	onCancel func()
}

// WithOnCancel registers a hook invoked by the root handler the moment
// this wid is targeted by Cancel, before the Cancel outcome is
// delivered. It is the scoped acquire/release mechanism combinators use
// to release a host resource (most notably a TimerID) on every exit
// path, cancellation included — the Go stand-in for spec §4.7's
// rcount=2 "synchronous resume with the TimerId" trick (see DESIGN.md).
func WithOnCancel(hook func()) AwaitOption {
	return func(c *awaitConfig) { c.onCancel = hook }
}

func buildAwaitConfig(opts []AwaitOption) awaitConfig {
	var c awaitConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
