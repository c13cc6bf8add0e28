package response

import (
	"github.com/jinzhu/copier"

	"cedra-backend/internal/usecase/queries"
)

type AddressResponse struct {
	ID         int64   `json:"id"`
	Street     string  `json:"street"`
	PostalCode string  `json:"postalCode"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	IsDefault  bool    `json:"isDefault"`
	UserID     *string `json:"userId"`
	CompanyID  *int64  `json:"companyId"`
	Type       string  `json:"type"`
}

func FromAddressView(v *queries.AddressView) *AddressResponse {
	var resp AddressResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromAddressList(items []queries.AddressView) []*AddressResponse {
	res := make([]*AddressResponse, len(items))
	for i := range items {
		res[i] = FromAddressView(&items[i])
	}
	return res
}
