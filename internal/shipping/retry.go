package shipping

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"shopfront/internal/model"
)

// RetryClient decorates a shipping API with exponential backoff. Only the
// read-side lookups retry; fee quotes go through unchanged because a slow
// double quote is worse than a failed one during checkout.
type RetryClient struct {
	inner      API
	baseDelay  time.Duration
	maxRetries int
}

// NewRetryClient wraps inner with retry on transient provider failures.
func NewRetryClient(inner API, baseDelay time.Duration, maxRetries int) API {
	return &RetryClient{
		inner:      inner,
		baseDelay:  baseDelay,
		maxRetries: maxRetries,
	}
}

func (r *RetryClient) Provinces(ctx context.Context) ([]Province, error) {
	return retry(r, ctx, func(ctx context.Context) ([]Province, error) {
		return r.inner.Provinces(ctx)
	})
}

func (r *RetryClient) Districts(ctx context.Context, provinceID int) ([]District, error) {
	return retry(r, ctx, func(ctx context.Context) ([]District, error) {
		return r.inner.Districts(ctx, provinceID)
	})
}

func (r *RetryClient) Wards(ctx context.Context, districtID int) ([]Ward, error) {
	return retry(r, ctx, func(ctx context.Context) ([]Ward, error) {
		return r.inner.Wards(ctx, districtID)
	})
}

func (r *RetryClient) AvailableServices(ctx context.Context, fromDistrictID, toDistrictID int) ([]Service, error) {
	return retry(r, ctx, func(ctx context.Context) ([]Service, error) {
		return r.inner.AvailableServices(ctx, fromDistrictID, toDistrictID)
	})
}

// CalculateFee is not retried.
func (r *RetryClient) CalculateFee(ctx context.Context, req FeeRequest) (*FeeResponse, error) {
	return r.inner.CalculateFee(ctx, req)
}

// Generic retry helper
func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 500 || apiErr.StatusCode == 0 {
			return true
		}
		return errors.Is(err, model.ErrRateLimited)
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(250)) * time.Millisecond

	return base + jitter
}
