// Package dispatch runs accepted asynchronous executions on an
// engine-owned worker pool.
//
// The pool guarantees that every accepted job runs exactly once on a pool
// goroutine, makes no ordering promises between jobs, and drains all
// outstanding work before Close returns. There is no cancellation: once a
// job is accepted it runs to completion.
package dispatch
