package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUse marks which of the two credentials a token is.
type TokenUse = string

const (
	// TokenUseAccess is the short-lived API credential
	TokenUseAccess TokenUse = "access"
	// TokenUseRefresh is the long-lived credential that mints access tokens
	TokenUseRefresh TokenUse = "refresh"
)

// JWTClaims are the claims carried by both token kinds. Tokens bind a user
// id and an expiry, nothing else; authority is possession.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID string   `json:"uid,omitempty"`
	Use TokenUse `json:"use,omitempty"`
}

// UserID returns the bound user id, falling back to the subject claim.
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Expires returns the expiry time, zero when absent.
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// IssuedAtTime returns the issuance time, zero when absent.
func (c *JWTClaims) IssuedAtTime() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}
