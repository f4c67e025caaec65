package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/agent"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
)

type fakeRunner struct {
	result *agent.RunResult
	err    error
	query  string
	calls  int
}

func (f *fakeRunner) Run(_ context.Context, query string) (*agent.RunResult, error) {
	f.calls++
	f.query = query
	return f.result, f.err
}

func TestRecommendSuccess(t *testing.T) {
	runner := &fakeRunner{result: &agent.RunResult{
		RunID:          "run-1",
		Query:          "pizza in London",
		SearchReport:   "1. Joe's Pizza",
		Recommendation: "Go to Joe's.",
	}}
	h := NewRecommendHandler(runner, testLogger())

	rec := postJSON(t, h.Recommend, `{"query": "pizza in London"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var result agent.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if result.Recommendation != "Go to Joe's." {
		t.Errorf("recommendation = %q", result.Recommendation)
	}
	if runner.query != "pizza in London" {
		t.Errorf("runner query = %q", runner.query)
	}
}

func TestRecommendRequiresQuery(t *testing.T) {
	runner := &fakeRunner{}
	h := NewRecommendHandler(runner, testLogger())

	rec := postJSON(t, h.Recommend, `{"query": ""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if runner.calls != 0 {
		t.Errorf("runner called %d times, want 0", runner.calls)
	}
}

func TestRecommendErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"upstream auth", domain.NewAPIError(domain.ErrAuthentication, "invalid key", nil), http.StatusBadGateway},
		{"upstream rate limit", domain.NewAPIError(domain.ErrRateLimit, "quota exceeded", nil), http.StatusTooManyRequests},
		{"upstream timeout", domain.NewAPIError(domain.ErrTimeout, "deadline exceeded", nil), http.StatusGatewayTimeout},
		{"upstream 5xx", domain.NewAPIError(domain.ErrUpstream, "server error", nil), http.StatusBadGateway},
		{"validation", domain.NewAPIError(domain.ErrValidation, "bad criteria", nil), http.StatusBadRequest},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{err: tt.err}
			h := NewRecommendHandler(runner, testLogger())

			rec := postJSON(t, h.Recommend, `{"query": "pizza"}`)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	rec := postJSON(t, HealthCheck, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}
