package auth

import "context"

// Mailer delivers verification codes. Failures must propagate to the
// caller; the lifecycle manager never swallows them.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, code string) error
}

// DevMailer logs codes instead of sending them. For local development only.
type DevMailer struct {
	Logger Logger
}

func (m DevMailer) SendVerificationEmail(ctx context.Context, email, code string) error {
	logger := m.Logger
	if logger == nil {
		logger = defLogger{}
	}
	logger.Info("verification email to %s code %s", email, code)
	return nil
}
