package auth

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeDuplicateEmail     = "accounts_duplicate_email"
	TextCodeNotFound           = "accounts_not_found"
	TextCodeAlreadyVerified    = "accounts_already_verified"
	TextCodeCodeMismatch       = "accounts_code_mismatch"
	TextCodeInvalidCredentials = "accounts_invalid_credentials"
	TextCodeEmailNotVerified   = "accounts_email_not_verified"
	TextCodeMissingToken       = "accounts_missing_token"
	TextCodeTokenExpired       = "accounts_token_expired"
	TextCodeTokenMalformed     = "accounts_token_malformed"
	TextCodeMailerFailure      = "accounts_mailer_failure"
)

// ErrDuplicateEmail is returned when a sign-up reuses a registered email,
// regardless of the existing record's verification state.
var ErrDuplicateEmail = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrUserNotFound is returned when no record matches the given email or id.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrAlreadyVerified is returned when verification is replayed against a
// record that already completed it.
var ErrAlreadyVerified = errors.New("email already verified", errors.CategoryConflict).
	WithTextCode(TextCodeAlreadyVerified).
	WithCode(errors.CodeConflict)

// ErrCodeMismatch is returned when the submitted verification code does not
// equal the stored one.
var ErrCodeMismatch = errors.New("verification code does not match", errors.CategoryValidation).
	WithTextCode(TextCodeCodeMismatch).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrEmailNotVerified is returned by Login when verified-login gating is on
// and the record is still pending.
var ErrEmailNotVerified = errors.New("email not verified", errors.CategoryAuth).
	WithTextCode(TextCodeEmailNotVerified).
	WithCode(errors.CodeForbidden)

// ErrMissingToken is returned when a refresh is attempted without a token.
var ErrMissingToken = errors.New("refresh token missing", errors.CategoryAuth).
	WithTextCode(TextCodeMissingToken).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token fails validation on expiry alone.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for any other signature or parse failure.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrMailerFailure is returned when verification email dispatch fails after
// the pending record was written. The record stays Pending.
var ErrMailerFailure = errors.New("verification email dispatch failed", errors.CategoryOperation).
	WithTextCode(TextCodeMailerFailure).
	WithCode(errors.CodeInternal)

// ErrNoEmptyString is the error returned when hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the normal negative result of a password
// comparison, not an internal failure.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
