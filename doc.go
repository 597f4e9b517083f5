// Package asyncrt layers structured concurrency — promises, interleaved
// strands, cancellation, timeouts, forking — over a host that supplies
// only deferred callback scheduling (setTimeout/setImmediate) and
// callback cancellation (clearTimeout). It exposes a uniform "await"
// abstraction over callback-based APIs and a set of combinators that
// compose awaits with well-defined cancellation and completion
// semantics.
package asyncrt
