package auth

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/mrz1836/postmark"
)

const verificationSubject = "Your verification code"

// PostmarkMailerConfig holds the Postmark credentials and sender identity.
type PostmarkMailerConfig struct {
	ServerToken  string
	AccountToken string
	SenderEmail  string
}

// PostmarkMailer sends verification codes through Postmark's transactional
// API.
type PostmarkMailer struct {
	client *postmark.Client
	config PostmarkMailerConfig
	logger Logger
}

// NewPostmarkMailer creates a Postmark-backed Mailer.
func NewPostmarkMailer(cfg PostmarkMailerConfig) (*PostmarkMailer, error) {
	if cfg.ServerToken == "" {
		return nil, errors.New("postmark server token is required", errors.CategoryBadInput)
	}
	if cfg.SenderEmail == "" {
		return nil, errors.New("postmark sender email is required", errors.CategoryBadInput)
	}

	return &PostmarkMailer{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
		logger: defLogger{},
	}, nil
}

func (m *PostmarkMailer) WithLogger(logger Logger) *PostmarkMailer {
	m.logger = logger
	return m
}

func (m *PostmarkMailer) SendVerificationEmail(ctx context.Context, email, code string) error {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.config.SenderEmail,
		To:       email,
		Subject:  verificationSubject,
		TextBody: fmt.Sprintf("Your verification code is %s.", code),
		Tag:      "account-verification",
	})
	if err != nil {
		return errors.Wrap(err, ErrMailerFailure.Category, ErrMailerFailure.Message).
			WithTextCode(ErrMailerFailure.TextCode)
	}

	if resp.ErrorCode > 0 {
		m.logger.Error("postmark rejected verification email: %d %s", resp.ErrorCode, resp.Message)
		return ErrMailerFailure.Clone().WithMetadata(map[string]any{
			"error_code": resp.ErrorCode,
			"message":    resp.Message,
		})
	}

	return nil
}
