package api

import (
	"net/http"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/config"
)

// InfoHandler handles GET /api/info.
func InfoHandler(cfg config.APIConfig) http.HandlerFunc {
	info := InfoResponse{Version: cfg.Version, Description: cfg.Description}
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, info)
	}
}

// HealthHandler handles GET /health.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
