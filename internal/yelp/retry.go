package yelp

import (
	"errors"
	"time"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
)

const (
	// maxAttempts bounds one logical search: 1 initial try + 2 retries.
	maxAttempts = 3

	backoffBase = 1 * time.Second
	backoffCap  = 10 * time.Second
)

// isRetryable reports whether a translated failure is transient:
// connect-level network errors, request timeouts, and 5xx responses.
// Everything else (401, 429, 400, parse failures, cancellation)
// propagates immediately.
func isRetryable(err error) bool {
	if errors.Is(err, domain.ErrTimeout) || errors.Is(err, domain.ErrNetwork) {
		return true
	}
	if errors.Is(err, domain.ErrUpstream) {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			return apiErr.Status >= 500
		}
	}
	return false
}

// backoffDelay returns the wait before the given attempt (1-based
// retry index): base * 2^(attempt-1), capped. attempt=1 -> 1s,
// attempt=2 -> 2s.
func backoffDelay(attempt int) time.Duration {
	delay := backoffBase << (attempt - 1)
	if delay > backoffCap {
		return backoffCap
	}
	return delay
}
