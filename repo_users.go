package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var markVerifiedSQL = `UPDATE "users" AS "usr"
SET
	"verification_status" = ?,
	"verification_code" = NULL,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."id" = ?
RETURNING *;`

var updatePasswordSQL = `UPDATE "users" AS "usr"
SET
	"password_hash" = ?,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."id" = ?
RETURNING *;`

// Users is the user store. Email uniqueness is enforced by the table's
// unique constraint so concurrent sign-ups for the same email cannot race
// past the duplicate check.
type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)

	CreatePending(ctx context.Context, user *User, code string) (*User, error)
	CreatePendingTx(ctx context.Context, tx bun.IDB, user *User, code string) (*User, error)
	CreateVerified(ctx context.Context, user *User, role UserRole) (*User, error)
	CreateVerifiedTx(ctx context.Context, tx bun.IDB, user *User, role UserRole) (*User, error)

	UpsertOAuth(ctx context.Context, record *User) (*User, error)
	UpsertOAuthTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)

	MarkVerified(ctx context.Context, id uuid.UUID) error
	MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) CreatePending(ctx context.Context, user *User, code string) (*User, error) {
	return a.CreatePendingTx(ctx, a.db, user, code)
}

func (a *users) CreatePendingTx(ctx context.Context, tx bun.IDB, user *User, code string) (*User, error) {
	user.Verification = VerificationPending
	user.VerificationCode = &code
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, tx, user)
}

func (a *users) CreateVerified(ctx context.Context, user *User, role UserRole) (*User, error) {
	return a.CreateVerifiedTx(ctx, a.db, user, role)
}

func (a *users) CreateVerifiedTx(ctx context.Context, tx bun.IDB, user *User, role UserRole) (*User, error) {
	user.Role = role
	user.Verification = VerificationVerified
	user.VerificationCode = nil
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, tx, user)
}

func (a *users) UpsertOAuth(ctx context.Context, record *User) (*User, error) {
	return a.UpsertOAuthTx(ctx, a.db, record)
}

// UpsertOAuthTx links a provider identity to a user record keyed by email:
// repeat logins update the display name on the existing record instead of
// creating a duplicate.
func (a *users) UpsertOAuthTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	existing, err := a.GetByEmailTx(ctx, tx, record.Email)
	if err == nil {
		existing.Name = record.Name
		return a.Repository.UpdateTx(ctx, tx, existing, repository.UpdateByID(existing.ID.String()))
	}

	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	return a.CreateVerifiedTx(ctx, tx, record, RoleStandard)
}

func (a *users) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return a.MarkVerifiedTx(ctx, a.db, id)
}

func (a *users) MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := a.Repository.RawTx(ctx, tx, markVerifiedSQL, VerificationVerified, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *users) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.UpdatePasswordTx(ctx, a.db, id, passwordHash)
}

func (a *users) UpdatePasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, updatePasswordSQL, passwordHash, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleStandard
	}

	if record.Verification == "" {
		record.Verification = VerificationPending
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

// IsUniqueViolation reports whether err came from the store's unique email
// constraint. Both SQLite and Postgres phrasings are covered.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
