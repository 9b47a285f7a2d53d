// Package errs defines the error taxonomy shared by all engine components.
//
// Errors fall into two channels that are never conflated: engine-level
// errors (malformed calls, closed handles, resource exhaustion) are returned
// directly from API calls, while tool-outcome failures travel inside a
// Result with a Code classification and never surface as Go errors.
package errs
