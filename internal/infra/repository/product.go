package repository

import (
	"context"

	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/usecase/commands"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

func (r *ProductRepository) Create(ctx context.Context, p commands.NewProduct) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock, image_url, category_id, subcategory_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryID, p.SubcategoryID,
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert product", err)
	}
	return id, nil
}
