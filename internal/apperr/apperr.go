// Package apperr defines the error kinds shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	// ErrNotFound indicates a referenced preset, profile, project or doc example does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a malformed request.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream indicates the Crawlbase API call failed or its payload signalled failure.
	ErrUpstream = errors.New("upstream request failed")
)

// Error is a classified error with a user-facing message.
type Error struct {
	// Kind is one of ErrNotFound, ErrValidation or ErrUpstream.
	Kind error

	// Message is safe to return to API callers.
	Message string

	// StatusCode is the upstream HTTP status, when known.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound returns an ErrNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation returns an ErrValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Upstream returns an ErrUpstream error carrying the upstream status code (0 when the
// request never completed) and the cause.
func Upstream(statusCode int, message string, cause error) *Error {
	return &Error{Kind: ErrUpstream, Message: message, StatusCode: statusCode, Err: cause}
}

// Message returns the user-facing message of a classified error, or fallback otherwise.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// StatusCode returns the upstream status code carried by err, or 0.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}
