package asyncrt

import "log/slog"

// RootOption configures a Root at construction time.
type RootOption func(*Root)

// WithLogger sets a custom logger for the Root. Cancel logs a debug
// line per canceled wid through it; forked strands log through their
// Strand's Logger instead.
func WithLogger(handler slog.Handler) RootOption {
	return func(r *Root) {
		r.logger = slog.New(handler)
	}
}
