package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// searchRunner and recommendRunner abstract the two agents so the
// runner can be tested without an API client.
type searchRunner interface {
	Run(ctx context.Context, query string) (string, error)
}

type recommendRunner interface {
	Run(ctx context.Context, query, searchReport string) (string, error)
}

// RunResult is the outcome of one full search-and-recommend pipeline.
type RunResult struct {
	RunID          string        `json:"run_id"`
	Query          string        `json:"query"`
	SearchReport   string        `json:"search_report"`
	Recommendation string        `json:"recommendation"`
	Elapsed        time.Duration `json:"-"`
}

// Runner chains the search agent and the recommendation agent.
type Runner struct {
	search    searchRunner
	recommend recommendRunner
	logger    *slog.Logger
}

// NewRunner wires the two agents into a pipeline.
func NewRunner(search *SearchAgent, recommend *RecommendationAgent, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		search:    search,
		recommend: recommend,
		logger:    logger,
	}
}

// Run executes the full pipeline for one query: the search agent
// gathers venue data, then the recommendation agent analyses it.
func (r *Runner) Run(ctx context.Context, query string) (*RunResult, error) {
	runID := uuid.NewString()
	started := time.Now()

	logger := r.logger.With("run_id", runID)
	logger.Info("pipeline started", "query", query)

	report, err := r.search.Run(ctx, query)
	if err != nil {
		logger.Error("search agent failed", "error", err)
		return nil, fmt.Errorf("search phase: %w", err)
	}

	recommendation, err := r.recommend.Run(ctx, query, report)
	if err != nil {
		logger.Error("recommendation agent failed", "error", err)
		return nil, fmt.Errorf("recommendation phase: %w", err)
	}

	elapsed := time.Since(started)
	logger.Info("pipeline finished", "elapsed_ms", elapsed.Milliseconds())

	return &RunResult{
		RunID:          runID,
		Query:          query,
		SearchReport:   report,
		Recommendation: recommendation,
		Elapsed:        elapsed,
	}, nil
}
