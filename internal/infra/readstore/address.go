package readstore

import (
	"context"

	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/usecase/queries"
)

type AddressReadStore struct {
	db db.DBTX
}

func NewAddressReadStore(dbtx db.DBTX) *AddressReadStore {
	return &AddressReadStore{db: dbtx}
}

// ListVisibleToUser returns personal addresses plus company addresses of the
// user's companies that are either shared (no owner) or private to this
// user. The type column is computed, not stored.
func (r *AddressReadStore) ListVisibleToUser(ctx context.Context, userID string) ([]queries.AddressView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			a.id,
			a.street,
			a.postal_code,
			a.city,
			a.country,
			a.is_default,
			a.user_id,
			a.company_id,
			CASE
				WHEN a.user_id IS NOT NULL AND a.company_id IS NOT NULL THEN 'both'
				WHEN a.user_id IS NOT NULL THEN 'user'
				WHEN a.company_id IS NOT NULL THEN 'company'
				ELSE 'unknown'
			END AS type
		FROM addresses a
		WHERE a.user_id = $1
		   OR (
				a.company_id IN (
					SELECT cu.company_id
					FROM company_users cu
					WHERE cu.user_id = $1
				)
				AND (a.user_id IS NULL OR a.user_id = $1)
			)
		ORDER BY a.id DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list addresses", err)
	}
	defer rows.Close()

	var out []queries.AddressView
	for rows.Next() {
		var a queries.AddressView
		if err := rows.Scan(&a.ID, &a.Street, &a.PostalCode, &a.City, &a.Country, &a.IsDefault, &a.UserID, &a.CompanyID, &a.Type); err != nil {
			return nil, infra.WrapRepoErr("failed to scan address", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read addresses", err)
	}
	return out, nil
}
