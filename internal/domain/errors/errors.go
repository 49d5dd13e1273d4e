// Package errors defines the application error contract surfaced by the
// discovery engine: validation failures, cursor tampering, and upstream
// query failures are kept distinct so callers can react correctly.
package errors

import (
	"net/http"

	"nosh/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Is matches errors sharing the same business error code, so detail-carrying
// copies still compare equal to their sentinel under errors.Is.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrInvalidParameter covers malformed coordinates, out-of-range radius or
	// limits, and filter values outside their enumerations. The offending field
	// is carried in the details.
	ErrInvalidParameter = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PARAMETER",
		"invalid search parameter",
		"",
	)

	// ErrCursorInvalid marks a pagination token that failed to decode or no
	// longer matches the expected format. Deliberately distinct from
	// ErrInvalidParameter: the caller should restart from the first page
	// rather than adjust a filter.
	ErrCursorInvalid = NewBaseError(
		http.StatusBadRequest,
		"CURSOR_INVALID",
		"pagination cursor is invalid, restart from the first page",
		"",
	)

	// ErrUpstreamQuery is the fail-closed wrapper around data-store failures.
	// Store internals are never leaked to the caller.
	ErrUpstreamQuery = NewBaseError(
		http.StatusServiceUnavailable,
		"UPSTREAM_QUERY_FAILED",
		"search is temporarily unavailable",
		"",
	)

	// ErrIncompleteCandidate marks a candidate row missing a required ranking
	// input. Surfaced as a defect instead of silently dropping the row.
	ErrIncompleteCandidate = NewBaseError(
		http.StatusServiceUnavailable,
		"UPSTREAM_QUERY_FAILED",
		"search results are temporarily inconsistent",
		"",
	)

	// ErrUnauthorized is returned by the optional viewer-context middleware
	// when a presented bearer token cannot be verified.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"invalid or expired token",
		"",
	)

	// ErrInternalError is the generic fallback.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// FieldError builds an InvalidParameter error tagged with the offending field.
func FieldError(field, reason string) *BaseError {
	return ErrInvalidParameter.WithDetails(field + ": " + reason)
}

// UpstreamError wraps a store failure without leaking its internals to the caller.
type UpstreamError struct {
	err     error
	details string
}

// NewUpstreamError creates an upstream query failure carrying the cause for logs.
func NewUpstreamError(err error, details string) AppError {
	return &UpstreamError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return errors.Wrap(e.err, "upstream query failed").Error()
}

// Unwrap exposes the cause for errors.Is/As while the HTTP surface stays generic.
func (e *UpstreamError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *UpstreamError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *UpstreamError) ErrorCode() string {
	return "UPSTREAM_QUERY_FAILED"
}

// Message returns the user-friendly error message
func (e *UpstreamError) Message() string {
	return "search is temporarily unavailable"
}

// Details returns detailed error information
func (e *UpstreamError) Details() string {
	return e.details
}
