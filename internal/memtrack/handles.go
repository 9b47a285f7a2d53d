package memtrack

import (
	"sync"

	"github.com/runelabs/runekit/internal/errs"
)

// HandleTable tracks live result handles by identity so a release of an
// already-released handle is caught instead of silently corrupting state.
type HandleTable struct {
	mu   sync.Mutex
	live map[string]struct{}
}

// NewHandleTable creates an empty handle table.
func NewHandleTable() *HandleTable {
	return &HandleTable{
		live: make(map[string]struct{}, 16),
	}
}

// Add records a handle as live.
func (h *HandleTable) Add(id string) {
	h.mu.Lock()
	h.live[id] = struct{}{}
	h.mu.Unlock()
}

// Release removes a live handle. Releasing a handle that is not live
// returns errs.ErrResultFreed.
func (h *HandleTable) Release(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.live[id]; !ok {
		return errs.ErrResultFreed
	}

	delete(h.live, id)

	return nil
}

// Len returns the number of live handles.
func (h *HandleTable) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.live)
}
