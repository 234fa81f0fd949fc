package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService mints and validates the access/refresh token pair. The two
// kinds are signed with independent keys so leaking one key does not
// compromise the other kind.
type TokenService interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	ValidateAccessToken(raw string) (*JWTClaims, error)
	ValidateRefreshToken(raw string) (*JWTClaims, error)
	Refresh(refreshToken string) (string, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(accessKey, refreshKey []byte, accessTTL, refreshTTL time.Duration, issuer string, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		logger:     logger,
	}
}

// IssueAccessToken mints the short-lived API credential for userID.
func (ts *TokenServiceImpl) IssueAccessToken(userID string) (string, error) {
	return ts.sign(userID, TokenUseAccess, ts.accessKey, ts.accessTTL)
}

// IssueRefreshToken mints the long-lived credential for userID.
func (ts *TokenServiceImpl) IssueRefreshToken(userID string) (string, error) {
	return ts.sign(userID, TokenUseRefresh, ts.refreshKey, ts.refreshTTL)
}

// ValidateAccessToken verifies signature and expiry against the access key.
func (ts *TokenServiceImpl) ValidateAccessToken(raw string) (*JWTClaims, error) {
	return ts.validate(raw, TokenUseAccess, ts.accessKey)
}

// ValidateRefreshToken verifies signature and expiry against the refresh key.
func (ts *TokenServiceImpl) ValidateRefreshToken(raw string) (*JWTClaims, error) {
	return ts.validate(raw, TokenUseRefresh, ts.refreshKey)
}

// Refresh mints a new access token bound to the same user as a valid,
// unexpired refresh token. The refresh token itself is not rotated; it is
// reused until its own expiry. There is no revocation store, so a single
// refresh token cannot be invalidated early.
func (ts *TokenServiceImpl) Refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingToken
	}

	claims, err := ts.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	return ts.IssueAccessToken(claims.UserID())
}

func (ts *TokenServiceImpl) sign(userID string, use TokenUse, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID: userID,
		Use: use,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

func (ts *TokenServiceImpl) validate(raw string, use TokenUse, key []byte) (*JWTClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		ts.logger.Debug("TokenService parse failed: %v", err)
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	if claims.Use != "" && claims.Use != use {
		ts.logger.Error("TokenService validate token use mismatch: want %s got %s", use, claims.Use)
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
