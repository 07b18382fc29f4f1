package auth

// ClientClaims identifies the caller behind an authenticated request.
type ClientClaims interface {
	ClientID() string
	Source() string
}

// APIKeyClaims carries the identity resolved from an X-API-Key header.
type APIKeyClaims struct {
	KeyID       string
	Description string
}

func (c *APIKeyClaims) ClientID() string { return c.KeyID }
func (c *APIKeyClaims) Source() string   { return "API_KEY" }
