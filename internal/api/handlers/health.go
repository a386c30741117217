package handlers

import (
	"net/http"

	"github.com/hoanghai1803/veritas/internal/config"
)

// healthResponse tells the client which model is configured and whether a
// shared default key exists, so it can offer the API key dialog up front.
type healthResponse struct {
	Status     string `json:"status"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	DefaultKey bool   `json:"defaultKey"`
}

// Health handles GET /api/health.
func Health(cfg *config.Config) http.HandlerFunc {
	resp := healthResponse{
		Status:     "ok",
		Provider:   cfg.AI.Provider,
		Model:      cfg.AI.Model,
		DefaultKey: cfg.AI.APIKey != "",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}
