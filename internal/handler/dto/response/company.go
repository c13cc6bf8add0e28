package response

import (
	"github.com/jinzhu/copier"

	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"
)

type CompanyResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	VAT               *string `json:"vat"`
	BillingStreet     *string `json:"billingStreet"`
	BillingPostalCode *string `json:"billingPostalCode"`
	BillingCity       *string `json:"billingCity"`
	BillingCountry    *string `json:"billingCountry"`
	Role              string  `json:"role"`
	IsCompanyAdmin    bool    `json:"isCompanyAdmin"`
}

func FromCompanyView(v *queries.CompanyView) *CompanyResponse {
	var resp CompanyResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

type InviteResponse struct {
	Created   bool   `json:"created"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	EmailSent bool   `json:"emailSent"`
}

func FromInviteResult(r *commands.InviteResult) *InviteResponse {
	var resp InviteResponse
	_ = copier.Copy(&resp, r)
	return &resp
}

type ResetPasswordResponse struct {
	EmailSent bool `json:"emailSent"`
}
