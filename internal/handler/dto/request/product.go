package request

import (
	"github.com/shopspring/decimal"

	"cedra-backend/internal/usecase/commands"
)

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Stock         int32           `json:"stock" binding:"gte=0"`
	ImageURL      *string         `json:"imageUrl"`
	CategoryID    int64           `json:"categoryId" binding:"required"`
	SubcategoryID int64           `json:"subcategoryId" binding:"required"`
}

func (r *CreateProductRequest) ToInput() commands.NewProduct {
	return commands.NewProduct{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Stock:         r.Stock,
		ImageURL:      r.ImageURL,
		CategoryID:    r.CategoryID,
		SubcategoryID: r.SubcategoryID,
	}
}
