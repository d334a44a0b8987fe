// Package handler provides HTTP request handling for the server.
package handler

import (
	"net/http"

	"github.com/brizzai/google-connect/internal/auth"
	"github.com/brizzai/google-connect/internal/auth/constants"
	"github.com/brizzai/google-connect/internal/auth/middleware"
	"github.com/brizzai/google-connect/internal/logger"
	"go.uber.org/zap"
)

// Handler manages HTTP request handling and middleware configuration.
type Handler struct {
	auth *auth.Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(auth *auth.Service) *Handler {
	return &Handler{
		auth: auth,
	}
}

// CreateHTTPHandler builds the route table: the OAuth routes, plus the MCP
// transport when mcpHandler is non-nil. CORS and request logging wrap everything.
func (h *Handler) CreateHTTPHandler(mcpHandler http.Handler) http.Handler {
	mux := http.NewServeMux()

	h.auth.RegisterRoutes(mux)
	logger.Info("Registered OAuth routes", zap.String("initiate", constants.InitiatePath))

	if mcpHandler != nil {
		mux.Handle(constants.MCPPath, mcpHandler)
		logger.Info("Registered MCP transport", zap.String("path", constants.MCPPath))
	}

	return middleware.RequestLogging(h.auth.WrapWithCors(mux))
}
