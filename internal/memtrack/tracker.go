package memtrack

import (
	"sync"

	"github.com/runelabs/runekit/internal/errs"
)

// Stats is a point-in-time snapshot of allocator activity.
type Stats struct {
	// LiveAllocations is the number of buffers allocated and not yet freed.
	LiveAllocations int

	// LiveBytes is the total size of all live buffers.
	LiveBytes int64

	// TotalAllocations counts every successful Alloc since creation.
	TotalAllocations uint64

	// TotalFrees counts every successful Free since creation.
	TotalFrees uint64
}

// Tracker is a thread-safe allocator that records each buffer's base
// pointer and size. Free validates that the returned buffer's length
// exactly matches the recorded allocation size: callers on the far side
// of a boundary may be handing the size back from their own bookkeeping,
// and a mismatch there means the two sides have diverged.
type Tracker struct {
	mu     sync.Mutex
	live   map[*byte]int
	bytes  int64
	allocs uint64
	frees  uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		live: make(map[*byte]int, 16),
	}
}

// Alloc returns a zeroed buffer of the given size and records it as live.
func (t *Tracker) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, &errs.AllocationError{
			Size: size,
			Err:  &errs.InvalidArgumentError{Field: "size", Reason: "must be positive"},
		}
	}

	buf := make([]byte, size)

	t.mu.Lock()
	t.live[&buf[0]] = size
	t.bytes += int64(size)
	t.allocs++
	t.mu.Unlock()

	return buf, nil
}

// Free releases a buffer previously returned by Alloc. The buffer must be
// passed back with its original base and length; a re-sliced buffer fails
// with ErrUnknownAllocation (moved base) or ErrSizeMismatch (changed
// length), and a second Free of the same buffer fails with
// ErrUnknownAllocation.
func (t *Tracker) Free(buf []byte) error {
	if len(buf) == 0 {
		return &errs.AllocationError{
			Size: 0,
			Err:  &errs.InvalidArgumentError{Field: "buf", Reason: "must not be empty"},
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	size, ok := t.live[&buf[0]]
	if !ok {
		return &errs.AllocationError{Size: len(buf), Err: errs.ErrUnknownAllocation}
	}

	if size != len(buf) {
		// The allocation stays live: the caller's size bookkeeping is
		// wrong and releasing here would hide that.
		return &errs.AllocationError{Size: len(buf), Err: errs.ErrSizeMismatch}
	}

	delete(t.live, &buf[0])
	t.bytes -= int64(size)
	t.frees++

	return nil
}

// Stats returns a snapshot of the tracker's counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		LiveAllocations:  len(t.live),
		LiveBytes:        t.bytes,
		TotalAllocations: t.allocs,
		TotalFrees:       t.frees,
	}
}
