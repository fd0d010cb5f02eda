// Package errors provides structured error types for canvasgrid.
//
// Every failure the layout engine can report carries a machine-readable
// [Code], so the CLI and the HTTP API can react to it without matching on
// message text:
//   - INVALID_*: input validation failures (ids, sizes, formats, paths)
//   - NO_PLACEMENT, NO_ROUTE: the grid has no room for a node or an edge;
//     callers grow the grid and retry
//   - NOT_CLONABLE: a row or column cannot be duplicated
//   - GRID_INTEGRITY: a derived grid or a diagram violates its structural
//     invariants, which indicates a bug rather than a user error
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoPlacement, "no valid placement for node %q", id)
//	if errors.Is(err, errors.ErrCodeNoPlacement) {
//	    m.AddRowToEnd()
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidID     Code = "INVALID_ID"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Layout errors
	ErrCodeNoPlacement   Code = "NO_PLACEMENT"
	ErrCodeNoRoute       Code = "NO_ROUTE"
	ErrCodeNotClonable   Code = "NOT_CLONABLE"
	ErrCodeGridIntegrity Code = "GRID_INTEGRITY"
	ErrCodeExhausted     Code = "ATTEMPTS_EXHAUSTED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// Only the outermost *Error is consulted.
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

// IsLayoutFailure reports whether err means the grid ran out of room for a
// node or an edge. Such errors are recoverable by growing the grid.
func IsLayoutFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoPlacement, ErrCodeNoRoute:
		return true
	}
	return false
}
