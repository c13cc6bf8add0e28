package repository

import (
	"context"

	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/usecase/commands"
)

type AddressRepository struct {
	db db.DBTX
}

func NewAddressRepository(dbtx db.DBTX) *AddressRepository {
	return &AddressRepository{db: dbtx}
}

func (r *AddressRepository) Create(ctx context.Context, a commands.NewAddress) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO addresses (street, postal_code, city, country, user_id, company_id, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING id`,
		a.Street, a.PostalCode, a.City, a.Country, a.UserID, a.CompanyID,
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert address", err)
	}
	return id, nil
}
