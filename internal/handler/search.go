package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/httputil"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/tools"
)

// SearchHandler exposes the venue search tool directly, without the
// agents. Callers get the exact payload the model sees.
type SearchHandler struct {
	tool   tools.Executor
	logger *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(tool tools.Executor, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		tool:   tool,
		logger: logger,
	}
}

// SearchRequest is the JSON body for a direct search.
type SearchRequest struct {
	Location   string `json:"location"`
	Term       string `json:"term,omitempty"`
	Categories string `json:"categories,omitempty"`
	Price      string `json:"price,omitempty"`
	Radius     int    `json:"radius,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	OpenNow    *bool  `json:"open_now,omitempty"`
}

// Validate checks the request before it reaches the tool.
func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Location, validation.Required),
		validation.Field(&r.Radius, validation.Min(0)),
		validation.Field(&r.Limit, validation.Min(0)),
	)
}

// toolInput converts the request to the tool's input map, carrying
// only the fields the caller set.
func (r SearchRequest) toolInput() map[string]interface{} {
	input := map[string]interface{}{
		"location": r.Location,
	}
	if r.Term != "" {
		input["term"] = r.Term
	}
	if r.Categories != "" {
		input["categories"] = r.Categories
	}
	if r.Price != "" {
		input["price"] = r.Price
	}
	if r.Radius > 0 {
		input["radius"] = r.Radius
	}
	if r.Limit > 0 {
		input["limit"] = r.Limit
	}
	if r.SortBy != "" {
		input["sort_by"] = r.SortBy
	}
	if r.OpenNow != nil {
		input["open_now"] = *r.OpenNow
	}
	return input
}

// Search runs a venue search
// POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		handleError(w, domain.NewAPIError(domain.ErrValidation, err.Error(), err))
		return
	}

	// Search failures come back inside the payload, so callers and
	// the model see identical output.
	payload, err := h.tool.Execute(r.Context(), req.toolInput())
	if err != nil {
		h.logger.Error("search tool failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payload)
}
