package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrAuthRequired indicates a provider cannot perform the requested
	// search under its current (empty) credentials. It is raised before
	// any network call is made.
	ErrAuthRequired = errors.New("authentication required")

	// ErrQueryRequired indicates a search was requested without a query.
	ErrQueryRequired = errors.New("search query required")
)

// ConfigError indicates malformed or ambiguous configuration. It is fatal:
// no search starts while the configuration cannot be resolved.
type ConfigError struct {
	// Name is the provider instance name the error relates to, if any.
	Name string

	// Reason describes what is wrong.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: provider %q: %s", e.Name, e.Reason)
}

// NewConfigError builds a ConfigError for a provider instance name.
func NewConfigError(name, format string, args ...any) *ConfigError {
	return &ConfigError{Name: name, Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// APIError represents a non-2xx response from a provider API.
type APIError struct {
	// Provider is the instance name that produced the error.
	Provider string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the upstream error message, possibly truncated.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// NetworkError represents a transport-level failure: the request never
// produced an HTTP response (DNS, connect, timeout).
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError indicates a response body that does not match the expected
// shape. Unknown extra fields are tolerated and never produce this error.
type DecodeError struct {
	Provider string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Provider, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an API error with a 401 status.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}
