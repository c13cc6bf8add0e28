package commands

import (
	"context"
	"strings"

	"cedra-backend/internal/infra"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/queries"
)

const (
	AddressTypeUser    = "user"
	AddressTypeCompany = "company"
)

// NewAddress is the write-side row shape. Exactly one of UserID/CompanyID is
// set for plain addresses; both are set for a company address private to one
// member.
type NewAddress struct {
	Street     string
	PostalCode string
	City       string
	Country    string
	UserID     *string
	CompanyID  *int64
}

type AddressWriteRepository interface {
	Create(ctx context.Context, a NewAddress) (int64, error)
}

type CreateAddressInput struct {
	Street     string
	PostalCode string
	City       string
	Country    string
	Type       string
	CompanyID  *int64
	// PrivateCompany keeps a company address visible to its creator only.
	PrivateCompany bool
}

type AddressCommands interface {
	Create(ctx context.Context, userID string, in CreateAddressInput) (*queries.AddressView, error)
}

type addressCommandsImpl struct {
	addresses   AddressWriteRepository
	memberships queries.MembershipReadStore
}

func NewAddressCommands(addresses AddressWriteRepository, memberships queries.MembershipReadStore) AddressCommands {
	return &addressCommandsImpl{
		addresses:   addresses,
		memberships: memberships,
	}
}

func (c *addressCommandsImpl) Create(ctx context.Context, userID string, in CreateAddressInput) (*queries.AddressView, error) {
	street := strings.TrimSpace(in.Street)
	postalCode := strings.TrimSpace(in.PostalCode)
	city := strings.TrimSpace(in.City)
	country := strings.TrimSpace(in.Country)
	if street == "" || postalCode == "" || city == "" || country == "" {
		return nil, errs.Wrap(errs.ErrDomainValidation, "street, postal code, city and country are required")
	}

	row := NewAddress{
		Street:     street,
		PostalCode: postalCode,
		City:       city,
		Country:    country,
	}

	switch in.Type {
	case AddressTypeUser:
		row.UserID = &userID
	case AddressTypeCompany:
		if in.CompanyID == nil {
			return nil, errs.ErrAddressCompanyRequired
		}
		if _, err := c.memberships.Find(ctx, userID, *in.CompanyID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, errs.ErrNotCompanyMember)
			}
			return nil, err
		}
		row.CompanyID = in.CompanyID
		if in.PrivateCompany {
			row.UserID = &userID
		}
	default:
		return nil, errs.Wrap(errs.ErrDomainValidation, "address type must be user or company")
	}

	id, err := c.addresses.Create(ctx, row)
	if err != nil {
		return nil, err
	}

	return &queries.AddressView{
		ID:         id,
		Street:     row.Street,
		PostalCode: row.PostalCode,
		City:       row.City,
		Country:    row.Country,
		UserID:     row.UserID,
		CompanyID:  row.CompanyID,
		Type:       addressType(row),
	}, nil
}

func addressType(a NewAddress) string {
	switch {
	case a.UserID != nil && a.CompanyID != nil:
		return "both"
	case a.UserID != nil:
		return AddressTypeUser
	case a.CompanyID != nil:
		return AddressTypeCompany
	default:
		return "unknown"
	}
}
