// Package queue carries queued hooks across the deferred-execution boundary.
//
// The engine hands each queued hook over as a portable "Type@method"
// reference plus a serialized transition input; the Enqueuer stores them as
// jobs through a Repository. A Worker later claims pending jobs, resolves
// the reference through the hook registry, rehydrates the typed input, and
// invokes the handler. Live object identity and captured closures never
// cross the boundary — only static references are accepted upstream.
package queue
