package crm

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every resource client.
var (
	// ErrUnauthenticated is returned when no bearer token is available locally.
	// No request is sent.
	ErrUnauthenticated = errors.New("not authenticated: no bearer token available")
	// ErrUnauthorized is returned when the server rejects the credentials (401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when the server reports 404 on an operation that
	// has no legitimate absent result.
	ErrNotFound = errors.New("resource not found")
	// ErrMalformed is returned when a response body does not match the expected shape.
	ErrMalformed = errors.New("malformed response")
)

// Configuration errors.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrBaseURLInvalid      = errors.New("invalid base URL")
)

// FailedError is returned for any non-success status other than 401 and 404.
// Detail holds the response body verbatim.
type FailedError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Detail     string `json:"detail"      yaml:"detail"`
}

// Error implements the error interface.
func (e *FailedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
}

// MalformedError describes a body that could not be decoded into the expected shape.
type MalformedError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformed.Error(), e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: %s", ErrMalformed.Error(), e.Reason)
}

// Is reports ErrMalformed so callers can match with errors.Is.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// Unwrap returns the underlying decode error, if any.
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// IsUnauthenticated checks if the error means no token was available.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsUnauthorized checks if the error is a 401 from the server.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformed checks if the error is a decoding failure.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

// AsFailed returns the FailedError in the chain, or nil.
func AsFailed(err error) *FailedError {
	failedErr := &FailedError{}
	if errors.As(err, &failedErr) {
		return failedErr
	}

	return nil
}
