package errs

import (
	"errors"
	"fmt"
)

// Code classifies the outcome of an engine operation or tool execution.
// The zero value is CodeSuccess.
type Code int32

// Outcome classifications.
const (
	CodeSuccess          Code = 0
	CodeInvalidArgument  Code = -1
	CodeOutOfMemory      Code = -2
	CodeToolNotFound     Code = -3
	CodeExecutionFailed  Code = -4
	CodeVersionMismatch  Code = -5
	CodeThreadSafety     Code = -6
	CodeIO               Code = -7
	CodePermissionDenied Code = -8
	CodeTimeout          Code = -9
	CodeUnknown          Code = -99
)

// String returns the canonical name of the code.
func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeOutOfMemory:
		return "out_of_memory"
	case CodeToolNotFound:
		return "tool_not_found"
	case CodeExecutionFailed:
		return "execution_failed"
	case CodeVersionMismatch:
		return "version_mismatch"
	case CodeThreadSafety:
		return "thread_safety_violation"
	case CodeIO:
		return "io_error"
	case CodePermissionDenied:
		return "permission_denied"
	case CodeTimeout:
		return "timeout"
	default:
		return "unknown_error"
	}
}

// EngineError is the base interface for all engine-level errors.
type EngineError interface {
	error
	IsEngineError() bool
}

// Compile-time verification that all error types implement EngineError.
var (
	_ EngineError = (*InvalidArgumentError)(nil)
	_ EngineError = (*RegistrationError)(nil)
	_ EngineError = (*AllocationError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrEngineClosed indicates the engine handle has been closed and can
	// no longer accept work.
	ErrEngineClosed = errors.New("engine closed: create a new one with New()")

	// ErrToolExists indicates a registration collided with an existing
	// tool name. Distinct from ErrInvalidArgument so callers can tell a
	// collision apart from malformed input.
	ErrToolExists = errors.New("tool already registered")

	// ErrInvalidArgument indicates a malformed argument to an engine call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResultFreed indicates a Result was released more than once.
	ErrResultFreed = errors.New("result already freed")

	// ErrToolNotFound indicates an execution named a tool that is not
	// registered. Only the asynchronous fail-fast path returns this as
	// an error; synchronous execution reports the condition through the
	// result's classification.
	ErrToolNotFound = errors.New("tool not found")

	// ErrUnknownAllocation indicates a buffer passed to Free was not
	// produced by Alloc, or has already been freed.
	ErrUnknownAllocation = errors.New("unknown allocation")

	// ErrSizeMismatch indicates the length passed to Free does not match
	// the recorded allocation size.
	ErrSizeMismatch = errors.New("allocation size mismatch")
)

// InvalidArgumentError reports a malformed argument with field context.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidArgument).
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// IsEngineError implements EngineError.
func (e *InvalidArgumentError) IsEngineError() bool { return true }

// RegistrationError reports a failed tool registration.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register tool %q: %v", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// IsEngineError implements EngineError.
func (e *RegistrationError) IsEngineError() bool { return true }

// AllocationError reports a violation of the allocator contract.
type AllocationError struct {
	Size int
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation of %d bytes: %v", e.Size, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// IsEngineError implements EngineError.
func (e *AllocationError) IsEngineError() bool { return true }
