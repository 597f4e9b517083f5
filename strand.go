package asyncrt

import (
	"context"
	"log/slog"
)

// Runnable allows any struct to define the body of a strand. Mirrors
// the teacher's asynctask.Runnable, retargeted to take a *Strand so a
// strand body can reach the enclosing Capability and TimerHost, not
// just a bare context.Context.
type Runnable interface {
	Run(s *Strand) (any, error)
}

// RunnableFunc wraps a function to implement Runnable.
type RunnableFunc func(s *Strand) (any, error)

// Run calls the wrapped function.
func (f RunnableFunc) Run(s *Strand) (any, error) { return f(s) }

// Strand is the context a running strand of control carries through a
// call to a combinator: the capability it suspends through, the host it
// schedules timers on, a Go context for deadline/cancellation interop,
// and a logger for ambient diagnostics.
type Strand struct {
	Cap    Capability
	Host   TimerHost
	Ctx    context.Context
	Logger *slog.Logger
}

// WithCap returns a copy of s suspending through cap instead — used by
// Fork, Interleaved and FirstOf to hand each child strand its own
// (usually more tightly scoped) Capability while keeping the same host,
// context and logger.
func (s *Strand) WithCap(cap Capability) *Strand {
	cp := *s
	cp.Cap = cap
	return &cp
}

// WithContext returns a copy of s using ctx instead of s.Ctx.
func (s *Strand) WithContext(ctx context.Context) *Strand {
	cp := *s
	cp.Ctx = ctx
	return &cp
}
