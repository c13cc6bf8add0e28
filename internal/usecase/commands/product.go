package commands

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/queries"
)

type NewProduct struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	Stock         int32
	ImageURL      *string
	CategoryID    int64
	SubcategoryID int64
}

type ProductWriteRepository interface {
	Create(ctx context.Context, p NewProduct) (int64, error)
}

type ProductCommands interface {
	Create(ctx context.Context, in NewProduct) (*queries.ProductView, error)
}

type productCommandsImpl struct {
	products ProductWriteRepository
}

func NewProductCommands(products ProductWriteRepository) ProductCommands {
	return &productCommandsImpl{products: products}
}

func (c *productCommandsImpl) Create(ctx context.Context, in NewProduct) (*queries.ProductView, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, errs.Wrap(errs.ErrDomainValidation, "product name is required")
	}
	if in.Price.IsNegative() {
		return nil, errs.Wrap(errs.ErrDomainValidation, "price must not be negative")
	}
	if in.Stock < 0 {
		return nil, errs.Wrap(errs.ErrDomainValidation, "stock must not be negative")
	}

	id, err := c.products.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	return &queries.ProductView{
		ID:       id,
		Name:     in.Name,
		Price:    in.Price,
		ImageURL: in.ImageURL,
	}, nil
}
