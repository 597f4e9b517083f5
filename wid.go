package asyncrt

import (
	"math"
	"sync/atomic"
)

// Wid is an opaque identifier for one suspended await. Two wids are
// equal iff their integer tag matches.
type Wid uint64

// WidExit marks strands that must terminate silently rather than
// resume normally. It is never returned by the allocator.
const WidExit Wid = Wid(math.MaxUint64)

// widAllocator mints Wid values unique within one allocator; each Root
// owns its own, so two Roots may hand out equal wids. That is safe,
// since wids are only ever compared for equality within the handler
// stack that minted them.
type widAllocator struct {
	next atomic.Uint64
}

func (a *widAllocator) alloc() Wid {
	id := a.next.Add(1)
	w := Wid(id)
	if w == WidExit {
		// Practically unreachable (2^64-1 allocations), but guard the
		// reserved sentinel in case of wraparound.
		id = a.next.Add(1)
		w = Wid(id)
	}
	return w
}
