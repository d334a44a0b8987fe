package providers

import (
	"fmt"
	"net/url"

	"github.com/brizzai/google-connect/internal/auth/constants"
	"github.com/brizzai/google-connect/internal/config"
	"github.com/brizzai/google-connect/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleProvider builds Google consent URLs requesting offline, read-only
// access to Drive and Sheets.
type GoogleProvider struct {
	cfg *config.GoogleConfig
}

func NewGoogleProvider(cfg *config.GoogleConfig) *GoogleProvider {
	return &GoogleProvider{cfg: cfg}
}

// oauth2Config assembles a client configuration from the current settings.
// Values are passed through as-is; Load is where they get validated.
func (p *GoogleProvider) oauth2Config() (*oauth2.Config, error) {
	redirectURL := p.cfg.RedirectURL()
	if _, err := url.Parse(redirectURL); err != nil {
		return nil, fmt.Errorf("invalid redirect url: %w", err)
	}

	return &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       constants.Scopes,
	}, nil
}

func (p *GoogleProvider) AuthURL() (string, error) {
	cfg, err := p.oauth2Config()
	if err != nil {
		return "", err
	}

	authURL := cfg.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", constants.PromptSelectAccount),
	)

	logger.Debug("Generated Google authorization URL",
		zap.String("redirect_uri", cfg.RedirectURL),
		zap.Strings("scopes", cfg.Scopes),
	)
	return authURL, nil
}
