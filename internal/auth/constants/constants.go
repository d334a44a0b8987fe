package constants

import (
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

const (
	// InitiatePath starts the Google consent flow
	InitiatePath = "/api/google/initiate"

	// CallbackPath receives the authorization code from Google
	CallbackPath = "/api/google/callback"

	// HealthPath is the liveness probe
	HealthPath = "/healthz"

	// MCPPath serves the streamable HTTP MCP transport
	MCPPath = "/mcp"

	// PromptSelectAccount forces the account chooser even with an active Google session
	PromptSelectAccount = "select_account"

	// AuthorizationURLTool is the MCP tool name returning the consent URL
	AuthorizationURLTool = "google_authorization_url"
)

// Scopes requested from the user. Both are read-only.
var Scopes = []string{
	drive.DriveReadonlyScope,
	sheets.SpreadsheetsReadonlyScope,
}
