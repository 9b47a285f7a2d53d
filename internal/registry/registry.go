package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/runelabs/runekit/internal/errs"
)

// Handler is the function signature for tool implementations. It receives
// the opaque parameter payload and returns the opaque result payload. The
// engine does not interpret either; both are conventionally JSON.
type Handler func(ctx context.Context, params []byte) ([]byte, error)

// Entry is one registered tool: an immutable name, an optional description,
// an optional input schema, and the executable behavior.
type Entry struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
	Handler     Handler

	// Resolved is the schema compiled for validation, populated at
	// registration so execution never pays resolution cost.
	Resolved *jsonschema.Resolved
}

// Registry is the ordered, name-keyed tool collection for one engine.
// Registration is internally serialized; lookups take a read lock, so
// concurrent registration and execution on the same engine are safe.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]int
	entries []Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]int, 8),
	}
}

// Register validates and appends a new entry. The name must be non-empty
// and unique; a collision is rejected with errs.ErrToolExists rather than
// overwriting the existing entry.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return &errs.RegistrationError{
			Name: e.Name,
			Err:  &errs.InvalidArgumentError{Field: "name", Reason: "must not be empty"},
		}
	}

	if e.Handler == nil {
		return &errs.RegistrationError{
			Name: e.Name,
			Err:  &errs.InvalidArgumentError{Field: "handler", Reason: "must not be nil"},
		}
	}

	if e.Schema != nil {
		resolved, err := e.Schema.Resolve(nil)
		if err != nil {
			return &errs.RegistrationError{
				Name: e.Name,
				Err:  &errs.InvalidArgumentError{Field: "schema", Reason: err.Error()},
			}
		}

		e.Resolved = resolved
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[e.Name]; exists {
		return &errs.RegistrationError{Name: e.Name, Err: errs.ErrToolExists}
	}

	r.byName[e.Name] = len(r.entries)
	r.entries = append(r.entries, e)

	return nil
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// At returns the entry at the given zero-based registration index.
func (r *Registry) At(index int) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.entries) {
		return Entry{}, &errs.InvalidArgumentError{
			Field:  "index",
			Reason: fmt.Sprintf("%d out of range [0, %d)", index, len(r.entries)),
		}
	}

	return r.entries[index], nil
}

// Lookup finds an entry by exact name match.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}

	return r.entries[i], true
}

// Snapshot returns a copy of all entries in registration order.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}
