// Package errors provides structured error types for polycalc.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Engine faults (raised while iterating or rationalizing) each have their own
// code so callers can tell a numerical failure apart from bad input:
//   - DEGENERATE_DERIVATIVE, COINCIDENT_APPROXIMATIONS, DIVERGED: step faults
//   - UNCONVERGED: the residual check after the iteration budget failed
//   - NON_RATIONALIZABLE: a root could not be turned into a fraction
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "leading coefficient is zero")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeParse         Code = "PARSE_ERROR"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Engine errors
	ErrCodeDegenerateDerivative     Code = "DEGENERATE_DERIVATIVE"
	ErrCodeCoincidentApproximations Code = "COINCIDENT_APPROXIMATIONS"
	ErrCodeDiverged                 Code = "DIVERGED"
	ErrCodeUnconverged              Code = "UNCONVERGED"
	ErrCodeNonRationalizable        Code = "NON_RATIONALIZABLE"

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

// IsEngineFault reports whether err was raised by the root-finding engine
// rather than by input validation. A fresh attempt with a new random start
// may succeed where an engine fault occurred.
func IsEngineFault(err error) bool {
	switch GetCode(err) {
	case ErrCodeDegenerateDerivative, ErrCodeCoincidentApproximations,
		ErrCodeDiverged, ErrCodeUnconverged, ErrCodeNonRationalizable:
		return true
	}
	return false
}

// ParseError describes a syntax error at a byte offset of the input.
type ParseError struct {
	Offset int
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
}

// Code returns the error code for this error type.
func (e *ParseError) Code() Code {
	return ErrCodeParse
}

// NewParseError wraps a ParseError in an *Error so it carries ErrCodeParse.
func NewParseError(input string, offset int, format string, args ...any) *Error {
	pe := &ParseError{Offset: offset, Input: input, Reason: fmt.Sprintf(format, args...)}
	return &Error{
		Code:    ErrCodeParse,
		Message: pe.Error(),
		Cause:   pe,
	}
}
