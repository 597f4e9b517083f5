package asyncrt

// Await0 wraps a host callback of shape func() with no arguments and no
// error. setup receives the plain resume func; the wrapper marshals it
// into a single AwaitResult with a nil value, Done == true.
func Await0(s *Strand, setup func(resume func())) error {
	wid := s.Cap.AwaitID()
	result := s.Cap.Await(func(raw Resume) {
		setup(func() {
			raw(AwaitResult{Done: true, Wid: wid})
		})
	}, wid)
	return result.Outcome.Err
}

// Await1 wraps a host callback of shape func(v any) with no error. rcount
// (default 1) is the number of resumptions expected before Done becomes
// true — for host APIs that invoke the callback more than once before
// the logical operation completes.
func Await1(s *Strand, setup func(resume func(v any)), rcount ...int) (any, error) {
	n := 1
	if len(rcount) > 0 && rcount[0] > 0 {
		n = rcount[0]
	}
	remaining := n
	wid := s.Cap.AwaitID()
	result := s.Cap.Await(func(raw Resume) {
		setup(func(v any) {
			remaining--
			raw(AwaitResult{Outcome: Outcome{Value: v}, Done: remaining <= 0, Wid: wid})
		})
	}, wid)
	return result.Outcome.Value, result.Outcome.Err
}

// AwaitX wraps a host callback of shape func(v any, err error) with an
// explicit outcome. It decrements a counter initialized to resumeCount
// and marks Done == true when the counter reaches zero; an error forces
// Done == true regardless of how many resumptions remain (spec §3: "An
// erroneous outcome forces done=true").
func AwaitX(s *Strand, setup func(resume func(v any, err error)), resumeCount int) (any, error) {
	if resumeCount <= 0 {
		resumeCount = 1
	}
	remaining := resumeCount
	wid := s.Cap.AwaitID()
	result := s.Cap.Await(func(raw Resume) {
		setup(func(v any, err error) {
			remaining--
			if err != nil {
				raw(AwaitResult{Outcome: Outcome{Err: err}, Done: true, Wid: wid})
				return
			}
			raw(AwaitResult{Outcome: Outcome{Value: v}, Done: remaining <= 0, Wid: wid})
		})
	}, wid)
	return result.Outcome.Value, result.Outcome.Err
}

// AwaitExn0 wraps a host callback that passes a nullable error and
// nothing else — the common "completion with possible failure" shape.
func AwaitExn0(s *Strand, setup func(resume func(err error))) error {
	wid := s.Cap.AwaitID()
	result := s.Cap.Await(func(raw Resume) {
		setup(func(err error) {
			raw(AwaitResult{Outcome: Outcome{Err: err}, Done: true, Wid: wid})
		})
	}, wid)
	return result.Outcome.Err
}

// AwaitExn1 wraps a host callback that passes either a value or an
// error, resuming exactly once.
func AwaitExn1(s *Strand, setup func(resume func(v any, err error))) (any, error) {
	return AwaitX(s, setup, 1)
}
