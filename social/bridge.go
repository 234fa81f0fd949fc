package social

import (
	"context"
	"strings"
)

// Bridge resolves authorization codes into verified identities. Providers
// are registered by name and selected per call; a failure in either network
// step surfaces as an error, never a partial identity.
type Bridge struct {
	providers map[string]Provider
}

// NewBridge creates a Bridge over the given providers.
func NewBridge(providers ...Provider) *Bridge {
	b := &Bridge{
		providers: make(map[string]Provider, len(providers)),
	}
	for _, p := range providers {
		b.Register(p)
	}
	return b
}

// Register adds or replaces a provider, keyed by its lowercased name.
func (b *Bridge) Register(p Provider) {
	if p == nil {
		return
	}
	b.providers[strings.ToLower(p.Name())] = p
}

// Provider returns the provider registered under name.
func (b *Bridge) Provider(name string) (Provider, error) {
	p, ok := b.providers[strings.ToLower(name)]
	if !ok {
		return nil, ErrProviderNotFound.Clone().WithMetadata(map[string]any{
			"provider": name,
		})
	}
	return p, nil
}

// ExchangeCodeForIdentity runs the two-step protocol: exchange the
// authorization code for a provider access token, then fetch the profile
// with it. Both steps must succeed before an identity is returned.
func (b *Bridge) ExchangeCodeForIdentity(ctx context.Context, provider, code string) (*Identity, error) {
	p, err := b.Provider(provider)
	if err != nil {
		return nil, err
	}

	token, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	profile, err := p.UserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	if profile == nil || profile.Email == "" {
		return nil, ErrMissingEmail.Clone().WithMetadata(map[string]any{
			"provider": p.Name(),
		})
	}

	return &Identity{
		Email: profile.Email,
		Name:  profile.Name,
	}, nil
}
