package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/brizzai/google-connect/internal/auth/providers"
	"github.com/brizzai/google-connect/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{}

func (failingProvider) AuthURL() (string, error) {
	return "", errors.New("invalid redirect url")
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestAuthorizationURLTool(t *testing.T) {
	tool := AuthorizationURLTool()
	assert.Equal(t, "google_authorization_url", tool.Name)
	assert.NotEmpty(t, tool.Description)
}

func TestHandleAuthorizationURL(t *testing.T) {
	provider := providers.NewGoogleProvider(&config.GoogleConfig{
		ClientID:     "client-123",
		ClientSecret: "s3cret",
		AppURL:       "https://app.example.com",
	})
	want, err := provider.AuthURL()
	require.NoError(t, err)

	result, err := NewHandler(provider).HandleAuthorizationURL(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, want, resultText(t, result))
}

func TestHandleAuthorizationURL_ProviderError(t *testing.T) {
	result, err := NewHandler(failingProvider{}).HandleAuthorizationURL(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid redirect url")
}
