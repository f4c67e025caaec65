package handler

import (
	"errors"
	"net/http"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/domain"
	"github.com/DanielTsiang/venue-recommendation-agent/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Upstream
// failures surface as gateway errors; the Yelp credential problem is
// the server's, not the caller's, so it maps to 502 rather than 401.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrBadRequest):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRateLimit):
		httputil.RespondError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrTimeout):
		httputil.RespondError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrUpstream):
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
