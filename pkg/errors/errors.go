// Package errors provides structured error types for pydepviz.
//
// This package defines error codes that enable:
//   - Consistent error handling across pipeline stages
//   - Machine-readable codes for programmatic handling
//   - Distinguishing recoverable degradations from fatal conditions
//
// # Error Codes
//
// Recoverable codes describe failures the pipeline absorbs locally:
// resolution falls back to bundled data, classification degrades to
// depth-based coloring, and preview export is skipped. Fatal codes
// (invalid input, unwritable output) abort the run.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeResolutionFailed, "pipdeptree exited: %v", cause)
//	if errors.Is(err, errors.ErrCodeResolutionFailed) {
//	    // Substitute fallback data and keep going
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Recoverable: the pipeline continues after logging a diagnostic.
	ErrCodeResolutionFailed       Code = "RESOLUTION_FAILED"
	ErrCodeRenderExportFailed     Code = "RENDER_EXPORT_FAILED"
	ErrCodeClassificationDegraded Code = "CLASSIFICATION_DEGRADED"

	// Fatal: surfaced to the caller, the process exits non-zero.
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeUnwritableOutput Code = "UNWRITABLE_OUTPUT"

	// Infrastructure
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRecoverable reports whether err carries a code the pipeline is
// allowed to absorb without aborting the run.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeResolutionFailed, ErrCodeRenderExportFailed, ErrCodeClassificationDegraded:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
