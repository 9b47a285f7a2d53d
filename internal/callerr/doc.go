// Package callerr keeps a per-goroutine slot for the most recent
// engine-level failure, the Go analogue of a thread-local last-error
// variable. Each goroutine sees only its own slot; tool-outcome failures
// are never recorded here, they travel inside results.
package callerr
