package yelp

import (
	"errors"
	"testing"
	"time"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
)

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 10 * time.Second}, // capped
		{10, 10 * time.Second},
	}

	for _, tt := range tests {
		if got := backoffDelay(tt.attempt); got != tt.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	upstream := func(status int) error {
		return &domain.APIError{Kind: domain.ErrUpstream, Message: "boom", Status: status}
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", domain.NewAPIError(domain.ErrTimeout, "timed out", nil), true},
		{"network", domain.NewAPIError(domain.ErrNetwork, "refused", nil), true},
		{"upstream 500", upstream(500), true},
		{"upstream 502", upstream(502), true},
		{"upstream 503", upstream(503), true},
		{"upstream 504", upstream(504), true},
		{"auth 401", &domain.APIError{Kind: domain.ErrAuthentication, Status: 401}, false},
		{"rate limit 429", &domain.APIError{Kind: domain.ErrRateLimit, Status: 429}, false},
		{"bad request 400", &domain.APIError{Kind: domain.ErrBadRequest, Status: 400}, false},
		{"validation", domain.NewAPIError(domain.ErrValidation, "malformed", nil), false},
		{"misuse", domain.NewAPIError(domain.ErrMisuse, "not opened", nil), false},
		{"plain error", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
