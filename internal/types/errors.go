package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for BHP2000 errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Query pack error codes
const (
	QUERIES_READ_FAILED    ErrorCode = "QUERIES_READ_FAILED"
	QUERIES_PARSE_FAILED   ErrorCode = "QUERIES_PARSE_FAILED"
	QUERIES_FORMAT_INVALID ErrorCode = "QUERIES_FORMAT_INVALID"
)

// Graph database error codes
const (
	GRAPH_CONNECTION_FAILED ErrorCode = "GRAPH_CONNECTION_FAILED"
	GRAPH_CONNECTION_CLOSED ErrorCode = "GRAPH_CONNECTION_CLOSED"
	GRAPH_QUERY_FAILED      ErrorCode = "GRAPH_QUERY_FAILED"
)

// Output error codes
const (
	OUTPUT_DIR_FAILED   ErrorCode = "OUTPUT_DIR_FAILED"
	OUTPUT_WRITE_FAILED ErrorCode = "OUTPUT_WRITE_FAILED"
)

// BHPError represents a structured error with error code, message, and optional cause.
// It supports error wrapping so errors.Is and errors.As work across chains.
type BHPError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *BHPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *BHPError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *BHPError) Is(target error) bool {
	var bhpErr *BHPError
	if errors.As(target, &bhpErr) {
		return e.Code == bhpErr.Code
	}
	return false
}

// NewError creates a new BHPError with the given code and message.
func NewError(code ErrorCode, message string) *BHPError {
	return &BHPError{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a new BHPError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *BHPError {
	return &BHPError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCodeOf extracts the ErrorCode from an error chain.
// Returns an empty code when no BHPError is present.
func ErrorCodeOf(err error) ErrorCode {
	var bhpErr *BHPError
	if errors.As(err, &bhpErr) {
		return bhpErr.Code
	}
	return ""
}
