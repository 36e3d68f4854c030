// Package errors provides structured error types for addax.
//
// Every failure raised by the graph model, builder, and codec carries a
// machine-readable [Code] so callers can branch on the failure category
// without matching message text:
//
//   - DUPLICATE_*: an identity was declared twice
//   - UNKNOWN_VERTEX: a relation or label references an undeclared identity
//   - INVALID_*: configuration, input, or file-format problems
//   - CORRUPT_DATA: a persisted container is inconsistent with its header
//
// All of these are fatal for the current operation. The pipeline makes a
// single deterministic pass, so nothing here is retried.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateEntity, "entity %d declared twice", id)
//	if errors.Is(err, errors.ErrCodeDuplicateEntity) {
//	    // Handle duplicate input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCorruptData, origErr, "decompress %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Identity errors
	ErrCodeDuplicateEntity Code = "DUPLICATE_ENTITY"
	ErrCodeDuplicateVertex Code = "DUPLICATE_VERTEX"
	ErrCodeUnknownVertex   Code = "UNKNOWN_VERTEX"

	// Input validation errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Persisted data errors
	ErrCodeCorruptData  Code = "CORRUPT_DATA"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
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
