package handlers

import (
	"net/http"

	"github.com/brizzai/google-connect/internal/auth/providers"
	"github.com/brizzai/google-connect/internal/logger"
	"github.com/brizzai/google-connect/internal/utils"
	"go.uber.org/zap"
)

// InitiateResponse is returned by the initiate endpoint
type InitiateResponse struct {
	URL string `json:"url"`
}

// Handler handles OAuth-related HTTP requests
type Handler struct {
	authProvider providers.Provider
}

// NewHandler creates a new Handler instance
func NewHandler(provider providers.Provider) *Handler {
	return &Handler{
		authProvider: provider,
	}
}

// HandleInitiate handles /api/google/initiate. It replies with the Google
// consent URL; the caller is expected to navigate the browser there.
func (h *Handler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authURL, err := h.authProvider.AuthURL()
	if err != nil {
		logger.Error("Failed to build authorization URL", zap.Error(err))
		utils.WriteError(w, "server_error", "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, InitiateResponse{URL: authURL})
}

// HandleHealth handles /healthz
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
