package handler

import (
	"context"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/agent"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/httputil"
)

// pipelineRunner runs the full search-and-recommend pipeline.
type pipelineRunner interface {
	Run(ctx context.Context, query string) (*agent.RunResult, error)
}

// RecommendHandler handles recommendation HTTP requests
type RecommendHandler struct {
	runner pipelineRunner
	logger *slog.Logger
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(runner pipelineRunner, logger *slog.Logger) *RecommendHandler {
	return &RecommendHandler{
		runner: runner,
		logger: logger,
	}
}

// RecommendRequest is the JSON body for a recommendation run.
type RecommendRequest struct {
	Query string `json:"query"`
}

// Validate checks the request.
func (r RecommendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required, validation.Length(1, 2000)),
	)
}

// Recommend runs the two-agent pipeline for a query
// POST /api/recommendations
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		handleError(w, domain.NewAPIError(domain.ErrValidation, err.Error(), err))
		return
	}

	result, err := h.runner.Run(r.Context(), req.Query)
	if err != nil {
		h.logger.Error("recommendation pipeline failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
