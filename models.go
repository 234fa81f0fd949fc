package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleStandard is a regular account created through direct sign-up
	RoleStandard UserRole = "standard"
	// RoleAdmin is an administrative account, assigned only at creation
	RoleAdmin UserRole = "admin"
)

// VerificationStatus tracks email ownership verification
type VerificationStatus = string

const (
	// VerificationPending means the account holds an unconsumed code
	VerificationPending VerificationStatus = "pending"
	// VerificationVerified means email ownership was proven
	VerificationVerified VerificationStatus = "verified"
)

// User is the user model
type User struct {
	bun.BaseModel    `bun:"table:users,alias:usr"`
	ID               uuid.UUID          `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email            string             `bun:"email,notnull,unique" json:"email,omitempty"`
	Name             string             `bun:"name,notnull" json:"name,omitempty"`
	Phone            string             `bun:"phone_number" json:"phone_number,omitempty"`
	Role             UserRole           `bun:"user_role,notnull" json:"user_role,omitempty"`
	PasswordHash     string             `bun:"password_hash" json:"-"`
	Verification     VerificationStatus `bun:"verification_status,notnull" json:"verification_status,omitempty"`
	VerificationCode *string            `bun:"verification_code,nullzero" json:"-"`
	CreatedAt        *time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt        *time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// IsVerified reports whether email ownership was proven.
func (u *User) IsVerified() bool {
	return u != nil && u.Verification == VerificationVerified
}

// PendingCode returns the stored verification code, empty when none.
func (u *User) PendingCode() string {
	if u == nil || u.VerificationCode == nil {
		return ""
	}
	return *u.VerificationCode
}
