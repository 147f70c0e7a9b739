// Package errors provides custom error types for the dost chat pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyMessage    = errors.New("message has neither text nor image")
	ErrEmptyCompletion = errors.New("no content in completion response")
	ErrTooLarge        = errors.New("attachment exceeds size limit")
	ErrReadFailure     = errors.New("failed to read attachment")
	ErrUnsupportedType = errors.New("unsupported attachment type")
)

// HTTPError represents a completion request that came back with a
// non-success status code. Detail carries the best-effort message
// extracted from the response body.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Detail)
}

// Is allows comparison with other HTTPErrors
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, detail string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Detail: detail}
}

// MalformedResponseError represents a success status whose body could
// not be parsed as JSON. Snippet carries the start of the raw body for
// diagnostics.
type MalformedResponseError struct {
	StatusCode int
	Snippet    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("received status %d but failed to parse JSON response: %q", e.StatusCode, e.Snippet)
}

// Is allows comparison with other MalformedResponseErrors
func (e *MalformedResponseError) Is(target error) bool {
	_, ok := target.(*MalformedResponseError)
	return ok
}

// NewMalformedResponseError creates a new MalformedResponseError
func NewMalformedResponseError(statusCode int, snippet string) *MalformedResponseError {
	return &MalformedResponseError{StatusCode: statusCode, Snippet: snippet}
}

// TimeoutError represents a request that exceeded its deadline. It is
// folded into the HTTP error kind: errors.Is(err, &HTTPError{}) holds.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// Is folds timeouts into the HTTP error kind
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	_, ok := target.(*HTTPError)
	return ok
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// AttachmentError wraps one of the attachment sentinels with the file
// it refers to.
type AttachmentError struct {
	Path string
	Kind error // ErrTooLarge, ErrReadFailure or ErrUnsupportedType
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %s: %v", e.Path, e.Kind)
}

// Unwrap exposes the sentinel kind to errors.Is
func (e *AttachmentError) Unwrap() error {
	return e.Kind
}

// NewAttachmentError creates a new AttachmentError
func NewAttachmentError(path string, kind error) *AttachmentError {
	return &AttachmentError{Path: path, Kind: kind}
}

// GetHTTPStatus extracts the status code from an error chain, or 0
func GetHTTPStatus(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return malformed.StatusCode
	}
	return 0
}

// IsTimeout reports whether the error chain contains a TimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}
