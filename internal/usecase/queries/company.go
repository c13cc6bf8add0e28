package queries

import (
	"context"

	"cedra-backend/internal/domain/company"
	"cedra-backend/internal/infra"
	"cedra-backend/internal/pkg/errs"
)

type CompanyQueries interface {
	// PrimaryCompany returns the caller's primary company (admin memberships
	// first, then lowest company id) with billing fields and the caller's
	// role in it.
	PrimaryCompany(ctx context.Context, userID string) (*CompanyView, error)
}

type companyQueriesImpl struct {
	memberships MembershipReadStore
	companies   CompanyReadStore
}

func NewCompanyQueries(memberships MembershipReadStore, companies CompanyReadStore) CompanyQueries {
	return &companyQueriesImpl{
		memberships: memberships,
		companies:   companies,
	}
}

func (q *companyQueriesImpl) PrimaryCompany(ctx context.Context, userID string) (*CompanyView, error) {
	memberships, err := q.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	primary := company.PrimaryMembership(memberships)
	if primary == nil {
		return nil, errs.ErrNoCompany
	}

	view, err := q.companies.FindByID(ctx, primary.CompanyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCompanyNotFound)
		}
		return nil, err
	}

	view.Role = primary.Role.String()
	view.IsCompanyAdmin = primary.Role.IsAdmin()
	return view, nil
}
