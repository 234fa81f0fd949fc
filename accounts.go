package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-accounts/social"
)

// Accounts orchestrates the account lifecycle: sign-up, email verification,
// sign-in, token refresh, sign-out, and OAuth account linking. It holds no
// cross-request state; uniqueness and single-active-code guarantees live in
// the user store.
type Accounts struct {
	repo                 RepositoryManager
	tokens               TokenService
	mailer               Mailer
	bridge               *social.Bridge
	logger               Logger
	requireVerifiedLogin bool
	opTimeout            time.Duration
}

// AccountsOption configures an Accounts instance.
type AccountsOption func(*Accounts)

// WithLogger sets the logger.
func WithLogger(logger Logger) AccountsOption {
	return func(a *Accounts) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithBridge sets the OAuth bridge used by OAuthLogin.
func WithBridge(bridge *social.Bridge) AccountsOption {
	return func(a *Accounts) {
		a.bridge = bridge
	}
}

// WithVerifiedLoginRequired controls whether Login rejects accounts that
// have not completed email verification. On by default.
func WithVerifiedLoginRequired(required bool) AccountsOption {
	return func(a *Accounts) {
		a.requireVerifiedLogin = required
	}
}

// NewAccounts creates the lifecycle manager over its collaborators.
func NewAccounts(repo RepositoryManager, tokens TokenService, mailer Mailer, opts ...AccountsOption) *Accounts {
	a := &Accounts{
		repo:                 repo,
		tokens:               tokens,
		mailer:               mailer,
		logger:               defLogger{},
		requireVerifiedLogin: true,
		opTimeout:            time.Second * 10,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// TokenService returns the TokenService instance used by this manager.
func (a *Accounts) TokenService() TokenService {
	return a.tokens
}

// Register runs direct sign-up: the user is created Pending with a
// single-use code, then the code is emailed. The record write is
// transactional; a mailer failure is surfaced but the record stays Pending
// so a resend can reuse it.
func (a *Accounts) Register(ctx context.Context, msg RegisterMessage) error {
	if err := msg.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	ctx, cancel := context.WithTimeout(ctx, a.opTimeout)
	defer cancel()

	code, err := GenerateVerificationCode()
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate verification code")
	}

	user := &User{
		Email: msg.Email,
		Name:  msg.Name,
		Phone: msg.Phone,
		Role:  RoleStandard,
	}

	if err := a.createUser(ctx, user, msg.Password, func(ctx context.Context, tx bun.Tx) error {
		_, err := a.repo.Users().CreatePendingTx(ctx, tx, user, code)
		return err
	}); err != nil {
		return err
	}

	if err := a.mailer.SendVerificationEmail(ctx, user.Email, code); err != nil {
		a.logger.Error("verification email dispatch failed for %s: %v", user.Email, err)
		return ErrMailerFailure.Clone().WithMetadata(map[string]any{
			"email": user.Email,
		})
	}

	return nil
}

// RegisterAdmin creates an account that is already Verified with role
// Admin. No verification email is dispatched.
func (a *Accounts) RegisterAdmin(ctx context.Context, msg RegisterMessage) error {
	if err := msg.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	ctx, cancel := context.WithTimeout(ctx, a.opTimeout)
	defer cancel()

	user := &User{
		Email: msg.Email,
		Name:  msg.Name,
		Phone: msg.Phone,
	}

	return a.createUser(ctx, user, msg.Password, func(ctx context.Context, tx bun.Tx) error {
		_, err := a.repo.Users().CreateVerifiedTx(ctx, tx, user, RoleAdmin)
		return err
	})
}

// createUser hashes the password and runs the duplicate check plus insert
// in one transaction. The unique email constraint closes the race between
// two concurrent sign-ups for the same address.
func (a *Accounts) createUser(ctx context.Context, user *User, password string, insert func(ctx context.Context, tx bun.Tx) error) error {
	hash, err := HashPassword(password)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	user.PasswordHash = hash

	err = a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := a.repo.Users().GetByEmailTx(ctx, tx, user.Email); err == nil {
			return ErrDuplicateEmail
		} else if !goerrors.IsNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
		}

		if err := insert(ctx, tx); err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicateEmail
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return nil
}

// VerifyEmail consumes the submitted code: on an exact match the record
// transitions Pending -> Verified and the code is cleared, so a replay of
// the same code is rejected as already verified.
func (a *Accounts) VerifyEmail(ctx context.Context, msg VerifyEmailMessage) error {
	if err := msg.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid verification payload")
	}

	ctx, cancel := context.WithTimeout(ctx, a.opTimeout)
	defer cancel()

	user, err := a.repo.Users().GetByEmail(ctx, msg.Email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user for verification")
	}

	if user.IsVerified() {
		return ErrAlreadyVerified
	}

	if user.PendingCode() != msg.Code {
		return ErrCodeMismatch
	}

	if err := a.repo.Users().MarkVerified(ctx, user.ID); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mark user verified")
	}

	return nil
}

// Login verifies the password and issues the access/refresh pair. An
// unknown email and a wrong password fail with the same error so responses
// cannot be used to enumerate accounts.
func (a *Accounts) Login(ctx context.Context, msg LoginMessage) (Credentials, error) {
	if err := msg.Validate(); err != nil {
		return Credentials{}, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	ctx, cancel := context.WithTimeout(ctx, a.opTimeout)
	defer cancel()

	user, err := a.repo.Users().GetByEmail(ctx, msg.Email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return Credentials{}, ErrInvalidCredentials
		}
		return Credentials{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user during login")
	}

	if err := ComparePasswordAndHash(msg.Password, user.PasswordHash); err != nil {
		if !goerrors.Is(err, ErrMismatchedHashAndPassword) {
			a.logger.Error("password comparison failed: %v", err)
		}
		return Credentials{}, ErrInvalidCredentials
	}

	if a.requireVerifiedLogin && !user.IsVerified() {
		return Credentials{}, ErrEmailNotVerified
	}

	return a.issueCredentials(user.ID.String())
}

// Refresh mints a new access credential from a valid refresh token. The
// refresh token is not rotated.
func (a *Accounts) Refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingToken
	}

	access, err := a.tokens.Refresh(refreshToken)
	if err != nil {
		return "", err
	}

	return BearerScheme + access, nil
}

// Logout returns the cleared credential pair. Stateless, cannot fail.
func (a *Accounts) Logout() Credentials {
	return ClearCredentials()
}

// OAuthLogin resolves the authorization code through the bridge and upserts
// the matching user record: created Verified with a sentinel password hash
// when absent, name refreshed when present. Session issuance is symmetric
// with Login: both tokens are returned.
func (a *Accounts) OAuthLogin(ctx context.Context, provider, code string) (Credentials, error) {
	if a.bridge == nil {
		return Credentials{}, goerrors.New("no oauth bridge configured", goerrors.CategoryInternal)
	}

	ctx, cancel := context.WithTimeout(ctx, a.opTimeout)
	defer cancel()

	identity, err := a.bridge.ExchangeCodeForIdentity(ctx, provider, code)
	if err != nil {
		a.logger.Error("oauth identity exchange failed for %s: %v", provider, err)
		return Credentials{}, err
	}

	record := &User{
		Email:        identity.Email,
		Name:         identity.Name,
		PasswordHash: RandomPasswordHash(),
	}
	if id, err := hashid.NewUUID(identity.Email); err == nil {
		record.ID = id
	}

	user, err := a.repo.Users().UpsertOAuth(ctx, record)
	if err != nil {
		return Credentials{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to upsert oauth user")
	}

	return a.issueCredentials(user.ID.String())
}

// SessionFromToken validates an access credential (with or without the
// Bearer prefix) and decodes it into a session.
func (a *Accounts) SessionFromToken(raw string) (*SessionObject, error) {
	claims, err := a.tokens.ValidateAccessToken(StripBearer(raw))
	if err != nil {
		a.logger.Error("SessionFromToken validation failed: %v", err)
		return nil, err
	}

	return sessionFromClaims(claims), nil
}

func (a *Accounts) issueCredentials(userID string) (Credentials, error) {
	access, err := a.tokens.IssueAccessToken(userID)
	if err != nil {
		return Credentials{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue access token")
	}

	refresh, err := a.tokens.IssueRefreshToken(userID)
	if err != nil {
		return Credentials{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue refresh token")
	}

	return NewCredentials(access, refresh), nil
}
