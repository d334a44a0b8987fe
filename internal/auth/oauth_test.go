package auth

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/brizzai/google-connect/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider implements providers.Provider for testing
type mockProvider struct{}

func (m *mockProvider) AuthURL() (string, error) {
	return "https://accounts.google.com/o/oauth2/auth?client_id=mock", nil
}

func TestNewService(t *testing.T) {
	cfg := &config.ServerConfig{}
	provider := &mockProvider{}

	service := NewService(cfg, provider)
	require.NotNil(t, service)
	assert.Same(t, cfg, service.config)
	assert.True(t, reflect.DeepEqual(service.authProvider, provider))
	assert.NotNil(t, service.handler)
}

func TestRegisterRoutes(t *testing.T) {
	service := NewService(&config.ServerConfig{}, &mockProvider{})
	mux := http.NewServeMux()
	service.RegisterRoutes(mux)

	for _, route := range []string{"/api/google/initiate", "/healthz"} {
		r := httptest.NewRequest(http.MethodGet, route, nil)
		h, pattern := mux.Handler(r)
		if pattern == "" || h == nil {
			t.Errorf("route %s not registered", route)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/google/initiate", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://accounts.google.com/o/oauth2/auth?client_id=mock"}`, rec.Body.String())
}

func TestWrapWithCors(t *testing.T) {
	service := NewService(&config.ServerConfig{AllowOrigins: []string{"https://app.example.com"}}, &mockProvider{})
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	service.WrapWithCors(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetProvider(t *testing.T) {
	provider := &mockProvider{}
	service := NewService(&config.ServerConfig{}, provider)
	assert.True(t, reflect.DeepEqual(service.GetProvider(), provider))
}
