package response

import (
	"cedra-backend/internal/usecase/queries"
)

type ProductResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	ImageURL *string `json:"imageUrl"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:       v.ID,
		Name:     v.Name,
		Price:    v.Price.StringFixed(2),
		ImageURL: v.ImageURL,
	}
}

func FromProductList(items []queries.ProductView) []*ProductResponse {
	res := make([]*ProductResponse, len(items))
	for i := range items {
		res[i] = FromProductView(&items[i])
	}
	return res
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromCategoryList(items []queries.CategoryView) []*CategoryResponse {
	res := make([]*CategoryResponse, len(items))
	for i, it := range items {
		res[i] = &CategoryResponse{ID: it.ID, Name: it.Name}
	}
	return res
}
