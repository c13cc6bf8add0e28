package readstore

import (
	"context"
	"errors"

	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id string) (*queries.UserView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash, is_admin, is_suspended, provider
		FROM users
		WHERE id = $1
		LIMIT 1`, id)

	return scanUser(row)
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash, is_admin, is_suspended, provider
		FROM users
		WHERE lower(email) = lower($1)
		LIMIT 1`, email)

	return scanUser(row)
}

func scanUser(row pgx.Row) (*queries.UserView, error) {
	var u queries.UserView
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.IsSuspended, &u.Provider)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &u, nil
}
