// Package tool provides the MCP tools exposed by the server.
package tool

import (
	"context"
	"fmt"

	"github.com/brizzai/google-connect/internal/auth/constants"
	"github.com/brizzai/google-connect/internal/auth/providers"
	"github.com/brizzai/google-connect/internal/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// Handler serves tool calls backed by the OAuth provider.
type Handler struct {
	provider providers.Provider
}

// NewHandler creates a new tool handler.
func NewHandler(provider providers.Provider) *Handler {
	return &Handler{provider: provider}
}

// AuthorizationURLTool describes the tool returning the Google consent URL.
func AuthorizationURLTool() mcp.Tool {
	return mcp.NewTool(constants.AuthorizationURLTool,
		mcp.WithDescription("Returns the Google OAuth consent URL granting read-only access to Drive and Sheets. "+
			"Open it in a browser to connect a Google account."),
	)
}

// HandleAuthorizationURL returns the consent URL as text. Provider failures
// are reported as a tool error so the client sees them in-band.
func (h *Handler) HandleAuthorizationURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	authURL, err := h.provider.AuthURL()
	if err != nil {
		logger.Error("Failed to build authorization URL",
			zap.String("tool", constants.AuthorizationURLTool),
			zap.Error(err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("failed to build authorization URL: %v", err)), nil
	}
	return mcp.NewToolResultText(authURL), nil
}
