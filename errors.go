package runekit

import "github.com/runelabs/runekit/internal/errs"

// Re-export error types from the internal package.

// Code classifies the outcome of an engine operation or tool execution.
type Code = errs.Code

// Outcome classifications.
const (
	CodeSuccess          = errs.CodeSuccess
	CodeInvalidArgument  = errs.CodeInvalidArgument
	CodeOutOfMemory      = errs.CodeOutOfMemory
	CodeToolNotFound     = errs.CodeToolNotFound
	CodeExecutionFailed  = errs.CodeExecutionFailed
	CodeVersionMismatch  = errs.CodeVersionMismatch
	CodeThreadSafety     = errs.CodeThreadSafety
	CodeIO               = errs.CodeIO
	CodePermissionDenied = errs.CodePermissionDenied
	CodeTimeout          = errs.CodeTimeout
	CodeUnknown          = errs.CodeUnknown
)

// EngineError is the base interface for all engine-level errors.
type EngineError = errs.EngineError

// InvalidArgumentError reports a malformed argument with field context.
type InvalidArgumentError = errs.InvalidArgumentError

// RegistrationError reports a failed tool registration.
type RegistrationError = errs.RegistrationError

// AllocationError reports a violation of the allocator contract.
type AllocationError = errs.AllocationError

// Re-export sentinel errors from the internal package.
var (
	// ErrEngineClosed indicates the engine handle has been closed.
	ErrEngineClosed = errs.ErrEngineClosed

	// ErrToolExists indicates a registration collided with an existing name.
	ErrToolExists = errs.ErrToolExists

	// ErrInvalidArgument indicates a malformed argument to an engine call.
	ErrInvalidArgument = errs.ErrInvalidArgument

	// ErrResultFreed indicates a Result was released more than once.
	ErrResultFreed = errs.ErrResultFreed

	// ErrUnknownAllocation indicates a Free of a buffer the engine never
	// allocated, or a second Free of the same buffer.
	ErrUnknownAllocation = errs.ErrUnknownAllocation

	// ErrSizeMismatch indicates a Free with a length that does not match
	// the original allocation.
	ErrSizeMismatch = errs.ErrSizeMismatch

	// ErrToolNotFound indicates an asynchronous execution named a tool
	// that is not registered. Synchronous execution reports the same
	// condition through the Result instead.
	ErrToolNotFound = errs.ErrToolNotFound
)
