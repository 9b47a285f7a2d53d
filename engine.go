package runekit

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/runelabs/runekit/internal/callerr"
	"github.com/runelabs/runekit/internal/dispatch"
	"github.com/runelabs/runekit/internal/errs"
	"github.com/runelabs/runekit/internal/memtrack"
	"github.com/runelabs/runekit/internal/registry"
)

// Engine is the top-level context owning the tool registry, the tracked
// allocator, and the asynchronous worker pool.
//
// An Engine is safe for concurrent use: registration is internally
// serialized, and Execute/ExecuteAsync may be called from any number of
// goroutines against the same engine. Multiple engines are independent.
type Engine struct {
	log     *slog.Logger
	reg     *registry.Registry
	pool    *dispatch.Pool
	tracker *memtrack.Tracker
	handles *memtrack.HandleTable
	lastErr *callerr.Slots
	closed  atomic.Bool
}

// New creates an engine with an empty registry and a running worker pool.
func New(opts ...Option) (*Engine, error) {
	options := applyOptions(opts)

	base := options.logger
	if base == nil {
		base = NopLogger()
	}

	e := &Engine{
		log:     base.With("component", "engine"),
		reg:     registry.New(),
		tracker: memtrack.NewTracker(),
		handles: memtrack.NewHandleTable(),
		lastErr: callerr.New(),
	}
	e.pool = dispatch.NewPool(base, options.workers, options.queueDepth)

	e.log.Debug("Engine created", "workers", options.workers, "queue_depth", options.queueDepth)

	return e, nil
}

// Close stops accepting work, blocks until every outstanding asynchronous
// execution has completed its callback, and releases the engine's tracking
// state. A second Close returns ErrEngineClosed and does nothing.
//
// Results obtained before Close remain valid: their storage is owned by
// the allocator, which survives until the last Free.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.pool.Close()
	e.lastErr.Reset()
	e.log.Debug("Engine closed")

	return nil
}

// fail records err in the calling goroutine's last-error slot and returns
// it. Only engine-level failures pass through here; tool outcomes never do.
func (e *Engine) fail(err error) error {
	e.lastErr.Record(err)
	return err
}

// LastError returns the most recent engine-level failure recorded on the
// calling goroutine, or nil. It is overwritten by the next engine-level
// failure on the same goroutine and is never a substitute for a Result's
// error fields, which are the per-call authoritative channel.
func (e *Engine) LastError() error {
	return e.lastErr.Last()
}

// RegisterTool adds a tool to the registry. The name must be non-empty
// and unique; registering a duplicate name fails with ErrToolExists and
// leaves the registry unchanged. Registration may happen concurrently
// with execution, but the common pattern is a setup phase before
// execution begins.
func (e *Engine) RegisterTool(t *Tool) error {
	if e.closed.Load() {
		return e.fail(ErrEngineClosed)
	}

	if t == nil {
		return e.fail(&InvalidArgumentError{Field: "tool", Reason: "must not be nil"})
	}

	err := e.reg.Register(registry.Entry{
		Name:        t.name,
		Description: t.description,
		Schema:      t.schema,
		Handler:     t.handler,
	})
	if err != nil {
		return e.fail(err)
	}

	e.log.Debug("Tool registered", "tool", t.name)

	return nil
}

// ToolCount returns the number of registered tools, 0 on a closed engine.
func (e *Engine) ToolCount() int {
	if e.closed.Load() {
		return 0
	}

	return e.reg.Count()
}

// ToolInfo returns metadata for the tool at the given zero-based
// registration index. The index must be below ToolCount; out-of-range
// indexes fail with ErrInvalidArgument. The returned value is a copy and
// needs no separate release.
func (e *Engine) ToolInfo(index int) (ToolInfo, error) {
	if e.closed.Load() {
		return ToolInfo{}, e.fail(ErrEngineClosed)
	}

	entry, err := e.reg.At(index)
	if err != nil {
		return ToolInfo{}, e.fail(err)
	}

	return ToolInfo{
		Name:        entry.Name,
		Description: entry.Description,
		HasSchema:   entry.Schema != nil,
	}, nil
}

// Tools returns metadata for all registered tools in registration order.
func (e *Engine) Tools() []ToolInfo {
	if e.closed.Load() {
		return nil
	}

	entries := e.reg.Snapshot()
	out := make([]ToolInfo, len(entries))
	for i, entry := range entries {
		out[i] = ToolInfo{
			Name:        entry.Name,
			Description: entry.Description,
			HasSchema:   entry.Schema != nil,
		}
	}

	return out
}

// Alloc returns a zeroed engine-owned buffer. Use it to build payloads
// with the engine's allocator when the caller's own allocator must not be
// mixed with the engine's. Every Alloc needs a matching Free.
func (e *Engine) Alloc(size int) ([]byte, error) {
	if e.closed.Load() {
		return nil, e.fail(ErrEngineClosed)
	}

	buf, err := e.tracker.Alloc(size)
	if err != nil {
		return nil, e.fail(err)
	}

	return buf, nil
}

// Free releases a buffer obtained from Alloc. The buffer must come back
// with its original base and length: the allocator does not self-describe
// block sizes, so the length is the caller's half of the contract.
func (e *Engine) Free(buf []byte) error {
	if e.closed.Load() {
		return e.fail(ErrEngineClosed)
	}

	if err := e.tracker.Free(buf); err != nil {
		return e.fail(err)
	}

	return nil
}

// AllocStats returns a snapshot of the engine allocator's counters. After
// every obtained Result has been freed, LiveAllocations for engine-owned
// result storage returns to zero; the counters are the leak oracle for
// ownership tests.
func (e *Engine) AllocStats() memtrack.Stats {
	return e.tracker.Stats()
}

// LiveResults returns the number of results obtained and not yet freed.
func (e *Engine) LiveResults() int {
	return e.handles.Len()
}

// newResult wraps one execution outcome into an engine-owned Result.
// Payload and message bytes are copied into tracked storage before the
// Result becomes visible to the caller.
func (e *Engine) newResult(requestID string, duration time.Duration, payload []byte, code errs.Code, message string) *Result {
	r := &Result{
		engine:    e,
		requestID: requestID,
		success:   code == errs.CodeSuccess,
		code:      code,
		duration:  duration,
	}

	if r.success {
		if len(payload) > 0 {
			buf, err := e.tracker.Alloc(len(payload))
			if err != nil {
				// Allocation failure downgrades the outcome itself.
				r.success = false
				r.code = errs.CodeOutOfMemory
				r.errMsg = []byte(err.Error())
				e.handles.Add(requestID)
				return r
			}

			copy(buf, payload)
			r.data = buf
		}
	} else if message != "" {
		if buf, err := e.tracker.Alloc(len(message)); err == nil {
			copy(buf, message)
			r.errMsg = buf
		} else {
			r.errMsg = []byte(message)
		}
	}

	e.handles.Add(requestID)

	return r
}

// releaseResult returns a result's storage to the tracker. Called by
// Result.Free with the result lock held.
func (e *Engine) releaseResult(r *Result) error {
	if err := e.handles.Release(r.requestID); err != nil {
		return e.fail(err)
	}

	if len(r.data) > 0 {
		if err := e.tracker.Free(r.data); err != nil {
			return e.fail(err)
		}
	}

	if len(r.errMsg) > 0 {
		// Message storage may be untracked if its allocation failed.
		if err := e.tracker.Free(r.errMsg); err != nil {
			e.log.Debug("Untracked message buffer", "request_id", r.requestID)
		}
	}

	return nil
}
