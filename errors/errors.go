// Package errors provides error types and handling for osspush operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents an osspush operation error with context about the
// operation that failed. It wraps the underlying error with additional
// context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "fetchToken", "upload", "walk")
	Op string

	// Bucket is the target bucket name (if applicable)
	Bucket string

	// Key is the object key (if applicable)
	Key string

	// Err is the underlying error from the SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("osspush.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("osspush.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("osspush.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("osspush.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// UpstreamError indicates that the token-issuing endpoint rejected the
// credential exchange, either at the HTTP layer or inside the response body.
type UpstreamError struct {
	// StatusCode is the HTTP status code (0 when the failure was reported
	// inside a 2xx response body)
	StatusCode int

	// Status is the HTTP status text (if applicable)
	Status string

	// Message is the human-readable reason from the response body
	Message string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token endpoint returned %d %s", e.StatusCode, e.Status)
	}
	if e.Message != "" {
		return fmt.Sprintf("token endpoint rejected request: %s", e.Message)
	}
	return "token endpoint rejected request"
}

// Sentinel errors for common osspush operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrPathNotFound indicates that the local path does not exist or is
	// inaccessible
	ErrPathNotFound = errors.New("osspush: path not found")

	// ErrUnsupportedPathType indicates that the local path is neither a
	// regular file nor a directory
	ErrUnsupportedPathType = errors.New("osspush: unsupported path type")

	// ErrCredential indicates that the credential exchange produced no
	// usable access key / secret pair
	ErrCredential = errors.New("osspush: no usable credential obtained")

	// ErrConfiguration indicates that the credential exchange did not assign
	// a target bucket or endpoint
	ErrConfiguration = errors.New("osspush: missing bucket or endpoint assignment")

	// ErrUploadFailed indicates a put that failed after exhausting retries
	// or hit a non-retryable failure
	ErrUploadFailed = errors.New("osspush: upload failed")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("osspush: invalid input")
)

// IsPathNotFound checks if an error indicates that the local path was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsPathNotFound(err error) bool {
	return errors.Is(err, ErrPathNotFound)
}

// IsCredential checks if an error indicates a missing or unusable credential.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsCredential(err error) bool {
	return errors.Is(err, ErrCredential)
}

// IsUploadFailed checks if an error indicates a fatal upload failure.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsUploadFailed(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
