package runekit

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/runelabs/runekit/internal/registry"
)

// Handler is the function signature for tool implementations.
//
// The params payload is opaque to the engine: it is passed through exactly
// as the caller supplied it, conventionally JSON. The returned payload is
// copied into engine-owned storage, so handlers may reuse their buffer
// after returning.
//
// A handler reports failure by returning an error. Return a *ToolError to
// pick the classification carried into the Result; any other error is
// classified as execution_failed.
type Handler = registry.Handler

// Schema is a JSON Schema object for tool input validation.
type Schema = jsonschema.Schema

// Tool is a named callable unit to register with an engine. Name and
// description are immutable once registered.
type Tool struct {
	name        string
	description string
	schema      *jsonschema.Schema
	handler     Handler
}

// ToolOption configures a Tool during construction.
type ToolOption func(*Tool)

// WithSchema attaches a JSON Schema for the tool's parameter payload.
// When set, the engine validates each execution's params against it before
// invoking the handler; payloads that fail validation produce a Result
// classified invalid_argument without the handler running.
func WithSchema(schema *jsonschema.Schema) ToolOption {
	return func(t *Tool) {
		t.schema = schema
	}
}

// NewTool creates a Tool with optional configuration.
//
// Example:
//
//	echo := runekit.NewTool("echo", "Echoes its input back",
//	    func(ctx context.Context, params []byte) ([]byte, error) {
//	        return params, nil
//	    },
//	    runekit.WithSchema(runekit.SimpleSchema(map[string]string{"text": "string"})),
//	)
func NewTool(name, description string, handler Handler, opts ...ToolOption) *Tool {
	t := &Tool{
		name:        name,
		description: description,
		handler:     handler,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Name returns the tool name.
func (t *Tool) Name() string {
	return t.name
}

// Description returns the tool description.
func (t *Tool) Description() string {
	return t.description
}

// InputSchema returns the JSON Schema for the tool input, or nil.
func (t *Tool) InputSchema() *jsonschema.Schema {
	return t.schema
}

// ToolInfo is registry metadata for one registered tool, returned by
// value: it stays usable after the engine is closed.
type ToolInfo struct {
	// Name is the unique tool name.
	Name string

	// Description is the optional human-readable description.
	Description string

	// HasSchema reports whether the tool validates its parameters.
	HasSchema bool
}
