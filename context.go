package asyncrt

import (
	"context"
	"log/slog"
)

// ctxKey is the unexported key type context.Context requires to avoid
// collisions with values set by unrelated packages.
type ctxKey struct{}

// WithContext embeds root in ctx so a *Root can ride along a
// context.Context instead of being threaded explicitly through every
// call between where it's created and where a Strand is finally built —
// cmd/asyncrtdemo uses this to carry its Root alongside the signal-aware
// context returned by signal.NotifyContext.
func WithContext(ctx context.Context, root *Root) context.Context {
	return context.WithValue(ctx, ctxKey{}, root)
}

// FromContext recovers the Root embedded by WithContext. If ctx carries
// none, it returns a fresh, unshared Root rather than panicking, so
// StrandFromContext degrades gracefully in a test or tool that never
// called WithContext.
func FromContext(ctx context.Context) *Root {
	if root, ok := ctx.Value(ctxKey{}).(*Root); ok {
		return root
	}
	return NewRoot()
}

// StrandFromContext builds a ready-to-run *Strand whose Capability is
// whatever Root FromContext recovers from ctx, paired with host and
// logger. This is the pairing WithContext/FromContext exist to support:
// a caller holding only a context.Context (no *Strand in scope, e.g. at
// a program's entry point) can still produce one.
func StrandFromContext(ctx context.Context, host TimerHost, logger *slog.Logger) *Strand {
	return &Strand{
		Cap:    FromContext(ctx),
		Host:   host,
		Ctx:    ctx,
		Logger: logger,
	}
}
