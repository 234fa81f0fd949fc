package social

import (
	"context"
	"time"
)

// Provider is an OAuth2 identity provider the bridge can exchange an
// authorization code against. Adding a provider means supplying endpoint
// URLs, credential parameters, and a profile field mapping; callers never
// change.
type Provider interface {
	// Name returns the provider identifier (e.g., "kakao", "google").
	Name() string

	// AuthCodeURL returns the URL to redirect users for authorization.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string) (*Token, error)

	// UserInfo fetches the user's profile using the access token.
	UserInfo(ctx context.Context, token *Token) (*Profile, error)
}

// Token represents an OAuth2 token response.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	ExpiresAt    time.Time
	Scopes       []string
	Raw          map[string]any
}

// Profile represents normalized user information from a provider.
type Profile struct {
	ProviderUserID string
	Provider       string
	Email          string
	EmailVerified  bool
	Name           string
	Raw            map[string]any
}

// Identity is a verified email/name pair handed to the account lifecycle
// manager. It only exists when both the token exchange and the profile
// fetch succeeded.
type Identity struct {
	Email string
	Name  string
}
