package readstore

import (
	"context"

	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) List(ctx context.Context) ([]queries.ProductView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, image_url
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	return scanProducts(rows)
}

func (r *ProductReadStore) SearchByName(ctx context.Context, q string) ([]queries.ProductView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, image_url
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id`, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search products", err)
	}
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]queries.ProductView, error) {
	defer rows.Close()

	var out []queries.ProductView
	for rows.Next() {
		var p queries.ProductView
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read products", err)
	}
	return out, nil
}

type CategoryReadStore struct {
	db db.DBTX
}

func NewCategoryReadStore(dbtx db.DBTX) *CategoryReadStore {
	return &CategoryReadStore{db: dbtx}
}

func (r *CategoryReadStore) ListCategories(ctx context.Context) ([]queries.CategoryView, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	return scanCategories(rows)
}

func (r *CategoryReadStore) ListSubcategories(ctx context.Context, categoryID int64) ([]queries.CategoryView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM subcategories WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list subcategories", err)
	}
	return scanCategories(rows)
}

func scanCategories(rows pgx.Rows) ([]queries.CategoryView, error) {
	defer rows.Close()

	var out []queries.CategoryView
	for rows.Next() {
		var c queries.CategoryView
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read categories", err)
	}
	return out, nil
}
