package runekit

import (
	"fmt"
	"sync"
	"time"
)

// ToolError carries an explicit classification out of a tool handler.
// Handlers return it (or wrap it) to control the Code recorded in the
// Result; plain errors are classified execution_failed.
type ToolError struct {
	Code    Code
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Result is the immutable, engine-owned outcome of one execution.
//
// Exactly one of the data payload and the error message is populated,
// consistent with OK. The payload storage belongs to the engine's
// allocator until Free is called; after Free, accessors return zero
// values. Every obtained Result must be freed exactly once, or the
// engine's allocation counters will report the leak.
type Result struct {
	engine    *Engine
	requestID string
	success   bool
	code      Code
	data      []byte
	errMsg    []byte
	duration  time.Duration

	mu    sync.Mutex
	freed bool
}

// OK reports whether the execution succeeded.
func (r *Result) OK() bool {
	return r.success
}

// Failed reports whether the execution failed.
func (r *Result) Failed() bool {
	return !r.success
}

// Code returns the outcome classification: CodeSuccess on success, the
// failure classification otherwise.
func (r *Result) Code() Code {
	return r.code
}

// RequestID returns the ULID assigned to the execution that produced
// this result.
func (r *Result) RequestID() string {
	return r.requestID
}

// Duration returns how long the tool ran.
func (r *Result) Duration() time.Duration {
	return r.duration
}

// Data returns the payload of a successful execution. The slice borrows
// engine-owned storage: it is valid until Free and must not be retained
// past it. Nil for failed executions, empty payloads, and freed results.
func (r *Result) Data() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.freed {
		return nil
	}

	return r.data
}

// Message returns the error message of a failed execution. Empty for
// successful executions and freed results.
func (r *Result) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.freed {
		return ""
	}

	return string(r.errMsg)
}

// Err returns nil for a successful execution, and a *ToolError carrying
// the classification and message otherwise. Like all accessors it is
// read-only and may be called any number of times before Free.
func (r *Result) Err() error {
	if r.success {
		return nil
	}

	return &ToolError{Code: r.code, Message: r.Message()}
}

// Free returns the result's payload storage to the engine. It must be
// called exactly once per obtained Result; a second call fails with
// ErrResultFreed and releases nothing.
func (r *Result) Free() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.freed {
		return ErrResultFreed
	}

	if err := r.engine.releaseResult(r); err != nil {
		return err
	}

	r.freed = true
	r.data = nil
	r.errMsg = nil

	return nil
}
