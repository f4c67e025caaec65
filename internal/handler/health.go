package handler

import (
	"net/http"
	"time"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/httputil"
)

// HealthCheck reports server liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
