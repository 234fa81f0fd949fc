// Package auth manages account and session lifecycles for a web backend:
// registration (direct, admin, and OAuth), email ownership verification,
// password authentication, and issuance of short-lived access tokens backed
// by longer-lived refresh tokens.
//
// Account lifecycle:
//   - Direct sign-up creates a user in VerificationPending with a single-use
//     6-digit code persisted on the record, then dispatches the code by email.
//     The record write happens in one transaction; a mailer failure leaves the
//     record Pending so a resend can reuse it.
//   - VerifyEmail transitions Pending -> Verified exactly once and clears the
//     stored code, so replaying the same code fails as already verified.
//   - Admin sign-up and OAuth sign-in create records directly Verified; OAuth
//     records carry a random sentinel password hash that can never match.
//
// Sessions:
//   - TokenService signs access and refresh tokens with independent keys so
//     leaking one does not compromise the other. Tokens are bearer
//     credentials; there is no server-side revocation, lifetime is purely
//     expiry driven. Refreshing mints a new access token only, the refresh
//     token is reused until its own expiry.
//
// The user store and the mailer are collaborators behind interfaces; wire
// them with NewRepositoryManager (Bun) and a Mailer implementation.
package auth
