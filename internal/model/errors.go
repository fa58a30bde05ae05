package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases.
// Use errors.Is() to check against these.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrRefreshFailed  = errors.New("credential refresh failed")
	ErrNetwork        = errors.New("network error")
	ErrServer         = errors.New("server error")
	ErrUpstreamError  = errors.New("upstream error")
	ErrRateLimited    = errors.New("rate limited")
)

// APIError represents a structured error for API responses.
// Implements error interface and supports unwrapping.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"` // HTTP status, not serialized
	Err        error  `json:"-"` // Wrapped error, not serialized
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a 404 error for missing resources.
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: 404,
		Err:        ErrNotFound,
	}
}

// NewValidationError creates a 400 error for invalid input.
func NewValidationError(field, reason string) *APIError {
	return &APIError{
		Code:       "VALIDATION_ERROR",
		Message:    fmt.Sprintf("invalid %s: %s", field, reason),
		StatusCode: 400,
		Err:        ErrInvalidRequest,
	}
}

// NewUnauthorizedError creates a 401 error for auth failures.
func NewUnauthorizedError(reason string) *APIError {
	return &APIError{
		Code:       "UNAUTHORIZED",
		Message:    reason,
		StatusCode: 401,
		Err:        ErrUnauthorized,
	}
}

// NewRefreshFailedError creates a 401 error signaling a failed token refresh.
// After this error the stored credential has been cleared and the caller must
// re-authenticate from scratch.
func NewRefreshFailedError(err error) *APIError {
	return &APIError{
		Code:       "REFRESH_FAILED",
		Message:    "session expired, sign in again",
		StatusCode: 401,
		Err:        fmt.Errorf("%w: %v", ErrRefreshFailed, err),
	}
}

// NewNetworkError creates an error for transport-level failures (no response).
// StatusCode is 0 since no HTTP exchange completed.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Code:       "NETWORK_ERROR",
		Message:    "request failed before a response arrived",
		StatusCode: 0,
		Err:        fmt.Errorf("%w: %v", ErrNetwork, err),
	}
}

// NewServerError creates an error for backend 5xx responses.
// The backend status is preserved so callers can tell 502 from 500.
func NewServerError(status int, message string) *APIError {
	if message == "" {
		message = "the server could not process the request"
	}
	return &APIError{
		Code:       "SERVER_ERROR",
		Message:    message,
		StatusCode: status,
		Err:        ErrServer,
	}
}

// NewUpstreamError creates a 502 error for third-party provider failures.
func NewUpstreamError(service string, err error) *APIError {
	return &APIError{
		Code:       "UPSTREAM_ERROR",
		Message:    fmt.Sprintf("%s request failed", service),
		StatusCode: 502,
		Err:        fmt.Errorf("%w: %v", ErrUpstreamError, err),
	}
}

// NewInternalError creates a 500 error for unexpected failures.
func NewInternalError(err error) *APIError {
	return &APIError{
		Code:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: 500,
		Err:        err,
	}
}

// NewRateLimitError creates a 429 error for rate limiting.
func NewRateLimitError(service string) *APIError {
	return &APIError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("%s rate limit exceeded, please retry later", service),
		StatusCode: 429,
		Err:        ErrRateLimited,
	}
}
