package auth

import (
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-accounts/social"
	"github.com/goliatone/go-accounts/social/providers/google"
	"github.com/goliatone/go-accounts/social/providers/kakao"
)

var defaultEnvLoaded sync.Once

// Config holds auth options, loaded from the environment. The access and
// refresh signing keys must differ so leaking one does not compromise the
// other token kind.
type Config struct {
	AccessSigningKey  string        `env:"AUTH_ACCESS_SIGNING_KEY,required"`
	RefreshSigningKey string        `env:"AUTH_REFRESH_SIGNING_KEY,required"`
	AccessTokenTTL    time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"12h"`
	RefreshTokenTTL   time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"168h"`
	Issuer            string        `env:"AUTH_ISSUER" envDefault:"go-accounts"`

	RequireVerifiedLogin bool `env:"AUTH_REQUIRE_VERIFIED_LOGIN" envDefault:"true"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `env:"GOOGLE_REDIRECT_URI"`

	KakaoClientID     string `env:"KAKAO_CLIENT_ID"`
	KakaoClientSecret string `env:"KAKAO_CLIENT_SECRET"`
	KakaoRedirectURI  string `env:"KAKAO_REDIRECT_URI"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
}

// LoadConfig reads the environment (and a .env file when present) into a
// Config.
func LoadConfig() (*Config, error) {
	defaultEnvLoaded.Do(func() {
		// the .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse auth config")
	}

	if cfg.AccessSigningKey == cfg.RefreshSigningKey {
		return nil, errors.New("access and refresh signing keys must differ", errors.CategoryBadInput)
	}

	return cfg, nil
}

// NewTokenService builds the TokenService described by the config.
func (c *Config) NewTokenService(logger Logger) TokenService {
	return NewTokenService(
		[]byte(c.AccessSigningKey),
		[]byte(c.RefreshSigningKey),
		c.AccessTokenTTL,
		c.RefreshTokenTTL,
		c.Issuer,
		logger,
	)
}

// NewBridge builds the OAuth bridge with every provider that has
// credentials configured.
func (c *Config) NewBridge() *social.Bridge {
	bridge := social.NewBridge()

	if c.GoogleClientID != "" {
		bridge.Register(google.New(google.Config{
			ClientID:     c.GoogleClientID,
			ClientSecret: c.GoogleClientSecret,
			CallbackURL:  c.GoogleRedirectURI,
		}))
	}

	if c.KakaoClientID != "" {
		bridge.Register(kakao.New(kakao.Config{
			ClientID:     c.KakaoClientID,
			ClientSecret: c.KakaoClientSecret,
			CallbackURL:  c.KakaoRedirectURI,
		}))
	}

	return bridge
}

// NewMailer builds the Postmark mailer when tokens are configured, falling
// back to the log-only dev mailer.
func (c *Config) NewMailer(logger Logger) (Mailer, error) {
	if c.PostmarkServerToken == "" {
		return DevMailer{Logger: logger}, nil
	}

	mailer, err := NewPostmarkMailer(PostmarkMailerConfig{
		ServerToken:  c.PostmarkServerToken,
		AccountToken: c.PostmarkAccountToken,
		SenderEmail:  c.SenderEmail,
	})
	if err != nil {
		return nil, err
	}

	if logger != nil {
		mailer = mailer.WithLogger(logger)
	}

	return mailer, nil
}
