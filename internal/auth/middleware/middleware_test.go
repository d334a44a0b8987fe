package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brizzai/google-connect/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var teapot = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestCORSWithOrigins(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantHeader string
	}{
		{name: "no list allows all", origins: nil, origin: "https://a.example.com", wantHeader: "*"},
		{name: "wildcard", origins: []string{"*"}, origin: "https://a.example.com", wantHeader: "*"},
		{name: "listed origin echoed", origins: []string{"https://app.example.com"}, origin: "https://app.example.com", wantHeader: "https://app.example.com"},
		{name: "unlisted origin", origins: []string{"https://app.example.com"}, origin: "https://evil.example.com", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/google/initiate", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORSWithOrigins(tt.origins)(teapot).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusTeapot, rec.Code)
			assert.Equal(t, tt.wantHeader, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSWithOrigins_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/google/initiate", nil)
	rec := httptest.NewRecorder()

	CORSWithOrigins(nil)(teapot).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestCORSWithOrigins_UnlistedOrigin(t *testing.T) {
	cors := CORSWithOrigins([]string{"https://app.example.com"})

	t.Run("preflight is refused without allow headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/google/initiate", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		cors(teapot).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("simple request passes through without cors headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/google/initiate", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		cors(teapot).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("listed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/google/initiate", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()

		cors(teapot).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
	})
}

func TestRequestLogging_Flush(t *testing.T) {
	logger.SetLogger(zap.NewNop())

	streaming := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		require.True(t, ok, "wrapped writer must stay flushable")
		_, _ = w.Write([]byte("data: hello\n\n"))
		f.Flush()
	})

	rec := httptest.NewRecorder()
	RequestLogging(streaming).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))

	assert.True(t, rec.Flushed)
	assert.Equal(t, "data: hello\n\n", rec.Body.String())
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })

	rec := httptest.NewRecorder()
	RequestLogging(teapot).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}
