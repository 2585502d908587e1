package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "SK-SESS-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// System errors (SYS).
var (
	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = NewDomainError("SK-SYS-5000", "internal error")
)

// Store errors (STOR).
var (
	// ErrStoreCorrupted indicates the shared store's lock was poisoned by a
	// mutation that terminated abnormally while holding it. Fatal for the
	// process's store: every subsequent call fails, nothing retries.
	ErrStoreCorrupted = NewDomainError("SK-STOR-5000", "internal state corrupted")
)

// Bridge errors (BRDG).
var (
	// ErrStoreUnavailable indicates the store module cannot be reached:
	// the direct symbols are unresolved and the fallback command failed.
	ErrStoreUnavailable = NewDomainError("SK-BRDG-5030", "store dependency unavailable")
)

// Session errors (SESS).
var (
	// ErrSessionNotFound indicates the requested session was not found.
	ErrSessionNotFound = NewDomainError("SK-SESS-4040", "session not found")

	// ErrDataKeyNotFound indicates the session exists but holds no value
	// under the requested data key.
	ErrDataKeyNotFound = NewDomainError("SK-SESS-4041", "data key not found")
)

// Host errors (HOST).
var (
	// ErrUnknownCommand indicates no handler is registered under the
	// requested command name.
	ErrUnknownCommand = NewDomainError("SK-HOST-4040", "unknown command")
)

// Argument errors (ARG).
var (
	// ErrMissingArgument indicates a required command argument is missing.
	ErrMissingArgument = NewDomainError("SK-ARG-1002", "missing required argument")

	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("SK-ARG-1001", "invalid argument")
)
