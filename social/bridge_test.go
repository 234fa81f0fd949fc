package social_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-accounts/social"
)

type stubProvider struct {
	name        string
	profile     *social.Profile
	exchangeErr error
	userInfoErr error

	exchangedCode string
	seenToken     *social.Token
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) AuthCodeURL(state string) string {
	return "https://provider.example.com/authorize?state=" + state
}

func (s *stubProvider) Exchange(ctx context.Context, code string) (*social.Token, error) {
	s.exchangedCode = code
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return &social.Token{AccessToken: "provider-access-token"}, nil
}

func (s *stubProvider) UserInfo(ctx context.Context, token *social.Token) (*social.Profile, error) {
	s.seenToken = token
	if s.userInfoErr != nil {
		return nil, s.userInfoErr
	}
	return s.profile, nil
}

func TestBridgeRegisterAndLookup(t *testing.T) {
	kakao := &stubProvider{name: "Kakao"}
	bridge := social.NewBridge(kakao)

	// lookup is case-insensitive
	p, err := bridge.Provider("kakao")
	require.NoError(t, err)
	assert.Equal(t, "Kakao", p.Name())

	p, err = bridge.Provider("KAKAO")
	require.NoError(t, err)
	assert.Equal(t, "Kakao", p.Name())

	_, err = bridge.Provider("google")
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, social.TextCodeProviderNotFound, richErr.TextCode)
}

func TestExchangeCodeForIdentity(t *testing.T) {
	profile := &social.Profile{
		Provider: "kakao",
		Email:    "person@example.com",
		Name:     "Person",
	}

	t.Run("runs both steps and returns the identity", func(t *testing.T) {
		provider := &stubProvider{name: "kakao", profile: profile}
		bridge := social.NewBridge(provider)

		identity, err := bridge.ExchangeCodeForIdentity(context.Background(), "kakao", "auth-code")
		require.NoError(t, err)

		assert.Equal(t, "person@example.com", identity.Email)
		assert.Equal(t, "Person", identity.Name)
		assert.Equal(t, "auth-code", provider.exchangedCode)
		require.NotNil(t, provider.seenToken)
		assert.Equal(t, "provider-access-token", provider.seenToken.AccessToken)
	})

	t.Run("unknown provider", func(t *testing.T) {
		bridge := social.NewBridge()

		_, err := bridge.ExchangeCodeForIdentity(context.Background(), "kakao", "auth-code")
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, social.TextCodeProviderNotFound, richErr.TextCode)
	})

	t.Run("exchange failure propagates", func(t *testing.T) {
		provider := &stubProvider{name: "kakao", exchangeErr: social.ErrTokenExchangeFailed}
		bridge := social.NewBridge(provider)

		_, err := bridge.ExchangeCodeForIdentity(context.Background(), "kakao", "auth-code")
		assert.ErrorIs(t, err, social.ErrTokenExchangeFailed)
	})

	t.Run("user info failure propagates", func(t *testing.T) {
		provider := &stubProvider{name: "kakao", userInfoErr: social.ErrUserInfoFailed}
		bridge := social.NewBridge(provider)

		_, err := bridge.ExchangeCodeForIdentity(context.Background(), "kakao", "auth-code")
		assert.ErrorIs(t, err, social.ErrUserInfoFailed)
	})

	t.Run("profile without email yields no identity", func(t *testing.T) {
		provider := &stubProvider{name: "kakao", profile: &social.Profile{Name: "No Email"}}
		bridge := social.NewBridge(provider)

		_, err := bridge.ExchangeCodeForIdentity(context.Background(), "kakao", "auth-code")
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, social.TextCodeMissingEmail, richErr.TextCode)
	})
}
