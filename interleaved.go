package asyncrt

import "golang.org/x/sync/errgroup"

// InterleavedX runs every action concurrently under one shared
// cancelable scope and waits for all of them, returning one Outcome per
// action in the same order as actions (spec §4.7: "interleavedx
// variants return Either<Error,_> per strand instead of raising").
//
// Deliberately does not fail fast: one action's error must not affect
// its siblings, so unlike FirstOf this join never calls scope.Cancel —
// every strand runs to its own natural completion. The join still goes
// through golang.org/x/sync/errgroup (as a Go()/Wait() aggregator, its
// derived-context cancellation left unused) in place of the teacher's
// hand-rolled sync.WaitGroup plus error channel in Manager.AwaitAll.
func InterleavedX(s *Strand, actions []Runnable) []Outcome {
	scope := NewCancelableScope(s.Cap)
	var g errgroup.Group

	results := make([]Outcome, len(actions))
	for i, a := range actions {
		i, a := i, a
		g.Go(func() error {
			child := s.WithCap(scope)
			v, err := a.Run(child)
			results[i] = Outcome{Value: v, Err: err}
			return nil // errors are reported via results, not through errgroup
		})
	}

	_ = g.Wait()

	return results
}

// Interleaved runs actions the same way as InterleavedX — every strand
// runs to completion, none canceled early — then rethrows the first
// action's error by index (not arrival order) instead of returning
// per-strand outcomes, matching spec §4.7's "interleaved unpacks,
// rethrowing the first error".
func Interleaved(s *Strand, actions []Runnable) ([]any, error) {
	outcomes := InterleavedX(s, actions)
	values := make([]any, len(outcomes))
	for i, o := range outcomes {
		if o.Err != nil {
			return nil, o.Err
		}
		values[i] = o.Value
	}
	return values, nil
}
