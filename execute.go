package runekit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/runelabs/runekit/internal/dispatch"
	"github.com/runelabs/runekit/internal/errs"
	"github.com/runelabs/runekit/internal/registry"
)

// CompletionFunc receives the outcome of one accepted asynchronous
// execution. It is invoked exactly once per accepted request, on an
// engine-owned goroutine, after the Result is fully populated. The
// callback must not block indefinitely: it occupies one of the engine's
// workers until it returns. Ownership of the Result transfers to the
// callback; it must arrange for Free.
type CompletionFunc func(requestID string, result *Result)

// ProgressFunc receives advisory progress from a running tool: a fraction
// in [0, 1] and a status message. Tools are not required to report
// progress, and the engine guarantees no particular frequency.
type ProgressFunc func(progress float64, message string)

// ExecOption configures a single execution.
type ExecOption func(*execConfig)

type execConfig struct {
	progress ProgressFunc
}

// WithProgress installs a progress callback for one execution. The tool's
// handler reaches it through ReportProgress.
func WithProgress(fn ProgressFunc) ExecOption {
	return func(c *execConfig) {
		c.progress = fn
	}
}

type progressKey struct{}

// ReportProgress emits advisory progress from inside a tool handler. The
// fraction is clamped to [0, 1]. It is a no-op unless the caller supplied
// WithProgress for this execution.
func ReportProgress(ctx context.Context, progress float64, message string) {
	fn, ok := ctx.Value(progressKey{}).(ProgressFunc)
	if !ok {
		return
	}

	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	fn(progress, message)
}

// Execute runs a named tool synchronously, blocking until it completes.
//
// The error return carries engine-level failures only: a closed engine or
// a malformed call. Everything that happens while locating or running the
// tool — unknown name, parameters rejected by the tool's schema, a
// handler error or panic — is reported through the Result's classification
// and leaves the engine fully usable. The caller owns the Result and must
// Free it exactly once.
func (e *Engine) Execute(ctx context.Context, name string, params []byte, opts ...ExecOption) (*Result, error) {
	if e.closed.Load() {
		return nil, e.fail(ErrEngineClosed)
	}

	if name == "" {
		return nil, e.fail(&InvalidArgumentError{Field: "name", Reason: "must not be empty"})
	}

	cfg := &execConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	requestID := dispatch.NewRequestID()

	return e.run(ctx, requestID, name, params, cfg), nil
}

// ExecuteAsync schedules a named tool on the engine's worker pool and
// returns the accepted request's ID immediately.
//
// Validation is fail-fast: a closed engine, empty name, nil callback, or
// unknown tool is reported as an error return and the callback is never
// invoked. Once accepted, the request runs to completion — there is no
// cancellation primitive — and the callback fires exactly once. Ordering
// between callbacks of different requests is not guaranteed.
func (e *Engine) ExecuteAsync(ctx context.Context, name string, params []byte, cb CompletionFunc, opts ...ExecOption) (string, error) {
	if e.closed.Load() {
		return "", e.fail(ErrEngineClosed)
	}

	if name == "" {
		return "", e.fail(&InvalidArgumentError{Field: "name", Reason: "must not be empty"})
	}

	if cb == nil {
		return "", e.fail(&InvalidArgumentError{Field: "cb", Reason: "must not be nil"})
	}

	if _, ok := e.reg.Lookup(name); !ok {
		return "", e.fail(fmt.Errorf("%w: %q", ErrToolNotFound, name))
	}

	cfg := &execConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	requestID := dispatch.NewRequestID()

	err := e.pool.Submit(requestID, func() {
		cb(requestID, e.run(ctx, requestID, name, params, cfg))
	})
	if err != nil {
		return "", e.fail(err)
	}

	return requestID, nil
}

// run locates and executes the tool, wrapping every outcome — including
// lookup and validation failures — into a Result.
func (e *Engine) run(ctx context.Context, requestID, name string, params []byte, cfg *execConfig) *Result {
	start := time.Now()

	entry, ok := e.reg.Lookup(name)
	if !ok {
		return e.newResult(requestID, time.Since(start), nil, errs.CodeToolNotFound,
			fmt.Sprintf("tool %q not found", name))
	}

	if entry.Resolved != nil {
		if reason, ok := validateParams(entry, params); !ok {
			return e.newResult(requestID, time.Since(start), nil, errs.CodeInvalidArgument, reason)
		}
	}

	if cfg.progress != nil {
		ctx = context.WithValue(ctx, progressKey{}, cfg.progress)
	}

	payload, err := invokeHandler(ctx, entry, params)
	duration := time.Since(start)

	if err != nil {
		code, message := classify(err)
		e.log.Debug("Tool failed", "tool", name, "request_id", requestID, "code", code, "duration", duration)

		return e.newResult(requestID, duration, nil, code, message)
	}

	e.log.Debug("Tool succeeded", "tool", name, "request_id", requestID, "duration", duration)

	return e.newResult(requestID, duration, payload, errs.CodeSuccess, "")
}

// invokeHandler calls the tool handler with panic containment: a
// panicking tool is reported like any failing tool and never takes the
// engine down with it.
func invokeHandler(ctx context.Context, entry registry.Entry, params []byte) (payload []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			payload = nil
			err = fmt.Errorf("tool panicked: %v", rec)
		}
	}()

	return entry.Handler(ctx, params)
}

// validateParams checks the parameter payload against the tool's resolved
// schema. An empty payload validates as an empty object.
func validateParams(entry registry.Entry, params []byte) (reason string, ok bool) {
	var instance any = map[string]any{}

	if len(params) > 0 {
		if err := json.Unmarshal(params, &instance); err != nil {
			return fmt.Sprintf("params are not valid JSON: %v", err), false
		}
	}

	if err := entry.Resolved.Validate(instance); err != nil {
		return fmt.Sprintf("params rejected by schema: %v", err), false
	}

	return "", true
}

// classify maps a handler error to an outcome classification.
func classify(err error) (errs.Code, string) {
	var te *ToolError
	if errors.As(err, &te) {
		code := te.Code
		if code == errs.CodeSuccess {
			// A ToolError with a success code is still a failure.
			code = errs.CodeExecutionFailed
		}

		return code, te.Message
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.CodeTimeout, err.Error()
	}

	return errs.CodeExecutionFailed, err.Error()
}
