package kakao

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-accounts/social"
)

func TestProviderAuthCodeURL(t *testing.T) {
	provider := New(Config{
		ClientID:    "client-id",
		CallbackURL: "https://example.com/callback",
	})

	authURL := provider.AuthCodeURL("state-token")

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "https://example.com/callback", query.Get("redirect_uri"))
	assert.Equal(t, "state-token", query.Get("state"))
	assert.Equal(t, "code", query.Get("response_type"))
}

func kakaoUserInfoHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1069542,
			"kakao_account": map[string]any{
				"email":             "user@example.com",
				"is_email_verified": true,
				"profile": map[string]any{
					"nickname": "User Example",
				},
			},
		})
	}
}

func TestProviderExchangeAndUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			values, err := url.ParseQuery(string(body))
			assert.NoError(t, err)

			assert.Equal(t, "authorization_code", values.Get("grant_type"))
			assert.Equal(t, "client-id", values.Get("client_id"))
			assert.Equal(t, "client-secret", values.Get("client_secret"))
			assert.Equal(t, "auth-code", values.Get("code"))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "token",
				"token_type":    "bearer",
				"expires_in":    21599,
				"refresh_token": "refresh-token",
			})
		case "/userinfo":
			kakaoUserInfoHandler(t)(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	provider := New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "https://example.com/callback",
		TokenURL:     server.URL + "/token",
		UserInfoURL:  server.URL + "/userinfo",
	})

	token, err := provider.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "token", token.AccessToken)
	assert.Equal(t, "refresh-token", token.RefreshToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	profile, err := provider.UserInfo(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "1069542", profile.ProviderUserID)
	assert.Equal(t, "kakao", profile.Provider)
	assert.Equal(t, "user@example.com", profile.Email)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, "User Example", profile.Name)
}

func TestProviderExchangeOmitsEmptyClientSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		values, err := url.ParseQuery(string(body))
		assert.NoError(t, err)

		// apps without a secret enabled must not send the parameter at all
		_, present := values["client_secret"]
		assert.False(t, present)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token",
			"token_type":   "bearer",
			"expires_in":   21599,
		})
	}))
	defer server.Close()

	provider := New(Config{
		ClientID:    "client-id",
		CallbackURL: "https://example.com/callback",
		TokenURL:    server.URL,
	})

	_, err := provider.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
}

func TestProviderExchangeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":             "invalid_client",
			"error_description": "Bad client credentials",
		})
	}))
	defer server.Close()

	provider := New(Config{
		ClientID: "client-id",
		TokenURL: server.URL,
	})

	_, err := provider.Exchange(context.Background(), "auth-code")
	require.Error(t, err)

	var provErr *social.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "kakao", provErr.Provider)
	assert.Equal(t, "exchange", provErr.Operation)
	assert.Equal(t, "invalid_client", provErr.Code)
	assert.Equal(t, http.StatusUnauthorized, provErr.Status)
}

func TestProviderUserInfoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"this access token does not exist","code":-401}`))
	}))
	defer server.Close()

	provider := New(Config{
		ClientID:    "client-id",
		UserInfoURL: server.URL,
	})

	_, err := provider.UserInfo(context.Background(), &social.Token{AccessToken: "stale"})
	require.Error(t, err)

	var provErr *social.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "user_info", provErr.Operation)
	assert.Equal(t, http.StatusUnauthorized, provErr.Status)
}
