package auth

import (
	"net/http"

	"github.com/brizzai/google-connect/internal/auth/constants"
	"github.com/brizzai/google-connect/internal/auth/handlers"
	"github.com/brizzai/google-connect/internal/auth/middleware"
	"github.com/brizzai/google-connect/internal/auth/providers"
	"github.com/brizzai/google-connect/internal/config"
	"go.uber.org/fx"
)

// Service represents the OAuth service
type Service struct {
	config       *config.ServerConfig
	authProvider providers.Provider
	handler      *handlers.Handler
}

// NewService creates a new OAuth service
func NewService(cfg *config.ServerConfig, provider providers.Provider) *Service {
	return &Service{
		config:       cfg,
		authProvider: provider,
		handler:      handlers.NewHandler(provider),
	}
}

// RegisterRoutes registers all OAuth-related routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(constants.InitiatePath, s.handler.HandleInitiate)
	mux.HandleFunc(constants.HealthPath, s.handler.HandleHealth)
}

// WrapWithCors wraps the handler with the configured CORS policy
func (s *Service) WrapWithCors(handler http.Handler) http.Handler {
	return middleware.CORSWithOrigins(s.config.AllowOrigins)(handler)
}

// GetProvider returns the configured auth provider
func (s *Service) GetProvider() providers.Provider {
	return s.authProvider
}

// Module provides the OAuth service
var Module = fx.Module("auth",
	providers.Module,
	fx.Provide(NewService),
)
