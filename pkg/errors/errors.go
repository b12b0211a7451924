// Package errors provides structured error types for histoprint.
//
// This package defines error codes and types that enable:
//   - A small, fixed error taxonomy for the rendering core
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages for the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The rendering core only ever fails with one of two codes:
//   - VALIDATION: the histogram data is malformed (edges not strictly
//     increasing, count/edge length mismatch, mismatched edges across series)
//   - CONFIGURATION: the display options cannot produce a plot (non-positive
//     width or height, unknown color or notation)
//
// The input adapters and CLI add INVALID_INPUT, INVALID_FIELD,
// FILE_NOT_FOUND and INTERNAL.
//
// # Usage
//
//	err := errors.Validation("edges not strictly increasing at index %d", i)
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rendering core errors
	ErrCodeValidation    Code = "VALIDATION"
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Input errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidField Code = "INVALID_FIELD"
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

// Validation creates a VALIDATION error.
func Validation(format string, args ...any) *Error {
	return New(ErrCodeValidation, format, args...)
}

// Configuration creates a CONFIGURATION error.
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
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
