// Package errors provides structured error types for nodegraph.
//
// Every error carries a machine-readable [Code]. Codes fall into a [Kind]
// by naming convention, which the HTTP API maps to a status:
//   - INVALID_*: [KindInvalid], the caller sent bad input
//   - *_NOT_FOUND: [KindNotFound], a node or engine does not exist
//   - *_FAILED: [KindFailed], the input was valid but processing it failed
//   - anything else: [KindInternal]
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLayoutNotFound, "layout engine %q not found", name)
//	if errors.Is(err, errors.ErrCodeLayoutNotFound) {
//	    // Handle unknown engine
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidSnapshot, jsonErr, "decode snapshot")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeNodeNotFound   Code = "NODE_NOT_FOUND"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"

	// Execution errors
	ErrCodeLayoutFailed Code = "LAYOUT_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Kind groups codes by who is at fault.
type Kind int

const (
	KindInternal Kind = iota // unexpected failure
	KindInvalid              // malformed input or config
	KindNotFound             // unknown node or engine
	KindFailed               // valid input that could not be processed
)

// Kind classifies c by its naming convention.
func (c Code) Kind() Kind {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "INVALID_"):
		return KindInvalid
	case s == string(ErrCodeNotFound) || strings.HasSuffix(s, "_NOT_FOUND"):
		return KindNotFound
	case strings.HasSuffix(s, "_FAILED"):
		return KindFailed
	}
	return KindInternal
}

// KindOf returns the kind of err's code. Errors without a code are
// [KindInternal].
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

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
