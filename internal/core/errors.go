// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Upstream errors
	ErrUpstreamStatus = &Error{Code: "UPSTREAM_STATUS", Message: "upstream returned non-success status"}
	ErrUpstreamDecode = &Error{Code: "UPSTREAM_DECODE", Message: "decoding upstream response failed"}

	// Data errors
	ErrNoData       = &Error{Code: "NO_DATA", Message: "no data available for the requested range"}
	ErrCoinNotFound = &Error{Code: "COIN_NOT_FOUND", Message: "coin not found"}
	ErrInvalidRange = &Error{Code: "INVALID_RANGE", Message: "invalid date range"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Archive errors
	ErrArchiveFailed = &Error{Code: "ARCHIVE_FAILED", Message: "archiving series failed"}

	// Insight errors
	ErrInsightFailed   = &Error{Code: "INSIGHT_FAILED", Message: "insight request failed"}
	ErrInsightDisabled = &Error{Code: "INSIGHT_DISABLED", Message: "no insight provider configured"}
)
