package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotFound indicates an origin or destination could not be geocoded
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest indicates the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrServerError indicates a server-side error
	ErrServerError = errors.New("server error")

	// ErrTimeout indicates the request timed out
	ErrTimeout = errors.New("request timed out")

	// ErrNoResults indicates the provider found no route
	ErrNoResults = errors.New("no results found")

	// ErrNotConfigured indicates no API key is set, so no request is made
	ErrNotConfigured = errors.New("directions provider not configured")

	// ErrDenied indicates the provider rejected the API key
	ErrDenied = errors.New("request denied")

	// ErrRateLimited indicates the provider quota is exhausted
	ErrRateLimited = errors.New("rate limited")
)

// APIError represents an error returned by the directions provider, either
// as an HTTP status or as a status field in an HTTP 200 body
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error %d: %s (endpoint: %s)", e.StatusCode, e.Status, e.Endpoint)
}

// Is implements errors.Is for APIError
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServerError:
		return e.StatusCode >= 500
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrDenied:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, status, endpoint string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
	}
}

// statusError maps a non-OK body status to an error. ZERO_RESULTS is not an
// APIError: the request was fine, there is just no route.
func statusError(status, message, endpoint string) error {
	code := http.StatusInternalServerError
	switch status {
	case StatusOK:
		return nil
	case StatusZeroResults:
		return ErrNoResults
	case StatusNotFound:
		code = http.StatusNotFound
	case StatusInvalidRequest:
		code = http.StatusBadRequest
	case StatusRequestDenied:
		code = http.StatusForbidden
	case StatusOverQueryLimit:
		code = http.StatusTooManyRequests
	}
	if message == "" {
		message = status
	}
	return &APIError{StatusCode: code, Status: status, Endpoint: endpoint, Message: message}
}

// ValidationError represents a validation error for request parameters
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidRequest
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrMissingField reports a required request field left empty
func ErrMissingField(field string) error {
	return NewValidationError(field, "field is required")
}
