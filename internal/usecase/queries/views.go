package queries

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserView is the credential-store projection of a user row. PasswordHash is
// nil for federated accounts.
type UserView struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	IsAdmin      bool
	IsSuspended  bool
	Provider     string
}

// ResolvedIdentity is the per-request identity derived by the resolver. It
// is never cached across requests.
type ResolvedIdentity struct {
	UserID         string  `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	IsAdmin        bool    `json:"isAdmin"`
	IsSuspended    bool    `json:"isSuspended"`
	IsCompanyAdmin bool    `json:"isCompanyAdmin"`
	CompanyID      *int64  `json:"companyId"`
	CompanyName    *string `json:"companyName"`
}

// CompanyView is the primary-company projection returned to members.
type CompanyView struct {
	ID                int64
	Name              string
	VAT               *string
	BillingStreet     *string
	BillingPostalCode *string
	BillingCity       *string
	BillingCountry    *string
	Role              string
	IsCompanyAdmin    bool
}

// AddressView carries a computed Type (user/company/both/unknown); there is
// no type column in storage.
type AddressView struct {
	ID         int64
	Street     string
	PostalCode string
	City       string
	Country    string
	IsDefault  bool
	UserID     *string
	CompanyID  *int64
	Type       string
}

type ProductView struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ImageURL *string
}

type CategoryView struct {
	ID   int64
	Name string
}

type MemberView struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}
