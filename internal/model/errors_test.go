package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "without wrapped error",
			err: &APIError{
				Code:    "TEST_ERROR",
				Message: "something went wrong",
			},
			want: "TEST_ERROR: something went wrong",
		},
		{
			name: "with wrapped error",
			err: &APIError{
				Code:    "TEST_ERROR",
				Message: "something went wrong",
				Err:     errors.New("underlying cause"),
			},
			want: "TEST_ERROR: something went wrong (underlying cause)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"refresh failed", NewRefreshFailedError(errors.New("401")), ErrRefreshFailed},
		{"network", NewNetworkError(errors.New("connection refused")), ErrNetwork},
		{"unauthorized", NewUnauthorizedError("bad token"), ErrUnauthorized},
		{"validation", NewValidationError("email", "required"), ErrInvalidRequest},
		{"server", NewServerError(503, ""), ErrServer},
		{"not found", NewNotFoundError("product"), ErrNotFound},
		{"upstream", NewUpstreamError("GHN", errors.New("timeout")), ErrUpstreamError},
		{"rate limited", NewRateLimitError("GHN"), ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelMatchingThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetching cart: %w", NewRefreshFailedError(errors.New("refresh 401")))

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As failed to find APIError in chain")
	}
	if apiErr.Code != "REFRESH_FAILED" {
		t.Errorf("Code = %s, want REFRESH_FAILED", apiErr.Code)
	}
	if !errors.Is(wrapped, ErrRefreshFailed) {
		t.Error("errors.Is(wrapped, ErrRefreshFailed) = false, want true")
	}
}

func TestNewServerError_DefaultMessage(t *testing.T) {
	err := NewServerError(500, "")
	if err.Message == "" {
		t.Error("NewServerError with empty message should fill a default")
	}
	if err.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", err.StatusCode)
	}
}
