package shared

import (
	"context"

	"cedra-backend/internal/domain/company"
)

// UnitOfWork wraps multi-statement sequences in a single transaction. The
// invite flow is the one caller that genuinely needs it: find-or-create user
// plus membership upsert must commit or roll back together.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes write repositories bound to the running transaction.
type Tx interface {
	Users() UserRepository
	Memberships() MembershipRepository
}

type NewUser struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	IsAdmin      bool
	IsSuspended  bool
	Provider     string
}

type UserRepository interface {
	Create(ctx context.Context, u NewUser) error
	// FindIDByEmail returns ("", nil) when no user carries the email.
	FindIDByEmail(ctx context.Context, email string) (string, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	Delete(ctx context.Context, userID string) error
}

type MembershipRepository interface {
	// Upsert inserts the membership or updates the role of an existing one.
	Upsert(ctx context.Context, m company.Membership) error
	DeleteByUser(ctx context.Context, userID string) error
}
