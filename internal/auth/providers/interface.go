package providers

// Provider builds the URL that sends a user to an identity provider's consent screen
type Provider interface {
	// AuthURL returns the fully qualified authorization URL
	AuthURL() (string, error)
}
