package repository

import (
	"context"
	"errors"

	"cedra-backend/internal/domain/company"
	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeForeignKeyViolation = "23503"

type MembershipRepository struct {
	db db.DBTX
}

func NewMembershipRepository(dbtx db.DBTX) *MembershipRepository {
	return &MembershipRepository{db: dbtx}
}

func (r *MembershipRepository) Upsert(ctx context.Context, m company.Membership) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO company_users (user_id, company_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, company_id) DO UPDATE SET role = EXCLUDED.role`,
		m.UserID, m.CompanyID, m.Role.String(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation {
			return infra.WrapRepoErr("user or company missing", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to upsert membership", err)
	}
	return nil
}

func (r *MembershipRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM company_users WHERE user_id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete memberships", err)
	}
	return nil
}
