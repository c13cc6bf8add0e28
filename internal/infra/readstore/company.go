package readstore

import (
	"context"
	"errors"

	"cedra-backend/internal/domain/company"
	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type CompanyReadStore struct {
	db db.DBTX
}

func NewCompanyReadStore(dbtx db.DBTX) *CompanyReadStore {
	return &CompanyReadStore{db: dbtx}
}

func (r *CompanyReadStore) FindByID(ctx context.Context, id int64) (*queries.CompanyView, error) {
	var c queries.CompanyView
	err := r.db.QueryRow(ctx, `
		SELECT id, name, vat, billing_street, billing_postal_code, billing_city, billing_country
		FROM companies
		WHERE id = $1
		LIMIT 1`, id,
	).Scan(&c.ID, &c.Name, &c.VAT, &c.BillingStreet, &c.BillingPostalCode, &c.BillingCity, &c.BillingCountry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("company not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find company", err)
	}
	return &c, nil
}

type MembershipReadStore struct {
	db db.DBTX
}

func NewMembershipReadStore(dbtx db.DBTX) *MembershipReadStore {
	return &MembershipReadStore{db: dbtx}
}

func (r *MembershipReadStore) ListByUser(ctx context.Context, userID string) ([]company.Membership, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, company_id, role
		FROM company_users
		WHERE user_id = $1
		ORDER BY company_id ASC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list memberships", err)
	}
	defer rows.Close()

	var out []company.Membership
	for rows.Next() {
		var m company.Membership
		var role string
		if err := rows.Scan(&m.UserID, &m.CompanyID, &role); err != nil {
			return nil, infra.WrapRepoErr("failed to scan membership", err)
		}
		m.Role = company.NormalizeRole(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read memberships", err)
	}
	return out, nil
}

func (r *MembershipReadStore) Find(ctx context.Context, userID string, companyID int64) (*company.Membership, error) {
	var m company.Membership
	var role string
	err := r.db.QueryRow(ctx, `
		SELECT user_id, company_id, role
		FROM company_users
		WHERE user_id = $1 AND company_id = $2
		LIMIT 1`, userID, companyID,
	).Scan(&m.UserID, &m.CompanyID, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("membership not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find membership", err)
	}
	m.Role = company.NormalizeRole(role)
	return &m, nil
}
