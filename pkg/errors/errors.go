// Package errors provides structured error types for pkgstats.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and serve mode
//   - Machine-readable error codes for programmatic handling
//   - A single mapping from failures to process exit codes
//
// # Error Codes
//
// Codes correspond to the failure domains of the pipeline:
//   - RETRIEVAL_FAILED: downloading the Contents index failed
//   - STORAGE_FAILED: local temp-file or cache storage failed
//   - DECOMPRESS_FAILED: the gzip payload is corrupt or truncated
//   - INVALID_USAGE: the invocation itself is invalid
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUsage, "invalid architecture: %s", arch)
//	if errors.Is(err, errors.ErrCodeUsage) {
//	    // Handle usage error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRetrieval, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the pipeline's failure domains.
const (
	// Index retrieval failed: network error, timeout, or bad HTTP status.
	ErrCodeRetrieval Code = "RETRIEVAL_FAILED"

	// Local storage failed: temp-file creation, writing, or cache I/O.
	ErrCodeStorage Code = "STORAGE_FAILED"

	// The downloaded payload is not a valid gzip stream.
	ErrCodeDecompress Code = "DECOMPRESS_FAILED"

	// The invocation is invalid: wrong argument count, bad flag value.
	ErrCodeUsage Code = "INVALID_USAGE"

	// Unexpected internal failure.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Process exit codes expected by callers, matching the historical tool.
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitDecompress = 5
	ExitRetrieval  = 11
	ExitUsage      = 22
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

// ExitCode maps an error to the process exit status callers expect:
// 0 for nil, 11 for retrieval and storage failures, 5 for decompression
// failures, 22 for invalid usage, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case ErrCodeRetrieval, ErrCodeStorage:
		return ExitRetrieval
	case ErrCodeDecompress:
		return ExitDecompress
	case ErrCodeUsage:
		return ExitUsage
	default:
		return ExitInternal
	}
}
