package request

import (
	"cedra-backend/internal/usecase/commands"
)

type CreateAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	City       string `json:"city" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Type       string `json:"type" binding:"omitempty,oneof=user company"`
	CompanyID  *int64 `json:"companyId"`
	// PrivateCompany defaults to true: company addresses stay visible to
	// their creator only unless explicitly shared.
	PrivateCompany *bool `json:"privateCompany"`
}

func (r *CreateAddressRequest) ToInput() commands.CreateAddressInput {
	typ := r.Type
	if typ == "" {
		typ = commands.AddressTypeUser
	}
	private := true
	if r.PrivateCompany != nil {
		private = *r.PrivateCompany
	}
	return commands.CreateAddressInput{
		Street:         r.Street,
		PostalCode:     r.PostalCode,
		City:           r.City,
		Country:        r.Country,
		Type:           typ,
		CompanyID:      r.CompanyID,
		PrivateCompany: private,
	}
}
