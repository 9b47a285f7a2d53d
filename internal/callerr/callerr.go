package callerr

import (
	"sync"

	"github.com/petermattis/goid"
)

// Slots stores the last engine-level error per calling goroutine. A slot is
// created lazily on the first record from a goroutine and overwritten by
// each subsequent failure from the same goroutine. The engine drops the
// whole table at cleanup.
type Slots struct {
	mu    sync.RWMutex
	slots map[int64]error
}

// New creates an empty slot table.
func New() *Slots {
	return &Slots{
		slots: make(map[int64]error, 8),
	}
}

// Record stores err as the calling goroutine's last error. A nil err
// clears the slot.
func (s *Slots) Record(err error) {
	id := goid.Get()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.slots, id)
		return
	}

	s.slots[id] = err
}

// Last returns the calling goroutine's last recorded error, or nil.
func (s *Slots) Last() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.slots[goid.Get()]
}

// Reset drops every slot.
func (s *Slots) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = make(map[int64]error, 8)
}
