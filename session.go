package auth

import (
	"strings"
	"time"
)

// BearerScheme prefixes the access credential handed to the web layer.
const BearerScheme = "Bearer "

// Credentials are the two session values the surrounding web layer stores
// as HTTP-only cookies. AccessToken carries the Bearer prefix, RefreshToken
// is the raw signed token. Zero values clear a session.
type Credentials struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// NewCredentials wraps a freshly signed token pair for delivery.
func NewCredentials(access, refresh string) Credentials {
	return Credentials{
		AccessToken:  BearerScheme + access,
		RefreshToken: refresh,
	}
}

// ClearCredentials returns the cleared pair used on sign-out. Stateless and
// cannot fail; the tokens themselves stay valid until expiry.
func ClearCredentials() Credentials {
	return Credentials{}
}

// StripBearer removes the Bearer prefix from an access credential so the
// raw token can be validated.
func StripBearer(value string) string {
	return strings.TrimPrefix(value, BearerScheme)
}

// SessionObject holds attributes decoded from a validated access token.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func sessionFromClaims(claims *JWTClaims) *SessionObject {
	issuedAt := claims.IssuedAtTime()
	expiresAt := claims.Expires()

	return &SessionObject{
		UserID:         claims.UserID(),
		Issuer:         claims.RegisteredClaims.Issuer,
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}
}
