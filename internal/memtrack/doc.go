// Package memtrack implements the engine-owned allocation bookkeeping.
//
// Every buffer that crosses the engine boundary is recorded by base pointer
// and size, so the exact-size contract on free can be enforced and leak
// checks can assert that live counters return to zero. Result handles are
// tracked in a separate table that detects double-free.
package memtrack
