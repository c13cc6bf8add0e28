package commands

import (
	"context"
	"log/slog"

	"cedra-backend/internal/domain/user"
	"cedra-backend/internal/infra"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/pkg/password"
	"cedra-backend/internal/pkg/randid"
	"cedra-backend/internal/session"
	"cedra-backend/internal/usecase/queries"
	"cedra-backend/internal/usecase/shared"
)

type AuthCommands interface {
	Signup(ctx context.Context, name user.Name, credentials user.Credentials) (*session.Session, error)
	Login(ctx context.Context, credentials user.Credentials) (*session.Session, error)
	// Logout is best-effort: an already-invalid token is not an error.
	Logout(ctx context.Context, token string)
	DeleteAccount(ctx context.Context, userID string) error
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	issuer    session.Issuer
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, issuer session.Issuer) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		readStore: readStore,
		issuer:    issuer,
	}
}

func (a *authCommandsImpl) Signup(ctx context.Context, name user.Name, credentials user.Credentials) (*session.Session, error) {
	email := credentials.Email().Value()

	existing, err := a.readStore.FindByEmail(ctx, email)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrEmailTaken
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	userID, err := randid.NewUserID()
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate user id")
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, shared.NewUser{
			ID:           userID,
			Email:        email,
			Name:         name.Value(),
			PasswordHash: &hash,
			IsAdmin:      false,
			IsSuspended:  false,
			Provider:     string(user.ProviderLocal),
		})
	})
	if err != nil {
		// Lost a race with a concurrent signup for the same email.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrEmailTaken)
		}
		return nil, err
	}

	return a.issuer.Create(ctx, userID)
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials user.Credentials) (*session.Session, error) {
	u, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same sentinel as password mismatch to prevent account enumeration.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrInvalidCredentials)
		}
		return nil, err
	}

	if u.IsSuspended {
		return nil, errs.ErrAccountSuspended
	}

	if u.PasswordHash == nil {
		// Federated account with no local credential.
		return nil, errs.ErrInvalidCredentials
	}

	if err := password.ComparePassword(*u.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	return a.issuer.Create(ctx, u.ID)
}

func (a *authCommandsImpl) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := a.issuer.Invalidate(ctx, token); err != nil {
		slog.Warn("failed to invalidate session on logout", "error", err.Error())
	}
}

func (a *authCommandsImpl) DeleteAccount(ctx context.Context, userID string) error {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Memberships().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	if err := a.issuer.InvalidateUserSessions(ctx, userID); err != nil {
		slog.Warn("failed to invalidate sessions after account deletion",
			"user_id", userID, "error", err.Error())
	}
	return nil
}
