package queries

import (
	"context"

	"cedra-backend/internal/domain/company"
	"cedra-backend/internal/infra"
	"cedra-backend/internal/pkg/errs"
)

type UserReadStore interface {
	FindByID(ctx context.Context, id string) (*UserView, error)
	FindByEmail(ctx context.Context, email string) (*UserView, error)
}

type MembershipReadStore interface {
	ListByUser(ctx context.Context, userID string) ([]company.Membership, error)
	Find(ctx context.Context, userID string, companyID int64) (*company.Membership, error)
}

type CompanyReadStore interface {
	FindByID(ctx context.Context, id int64) (*CompanyView, error)
}

type IdentityQueries interface {
	// Resolve derives the caller's effective roles from current database
	// state. At most three sequential lookups, no caching.
	Resolve(ctx context.Context, userID string) (*ResolvedIdentity, error)
}

type identityQueriesImpl struct {
	users       UserReadStore
	memberships MembershipReadStore
	companies   CompanyReadStore
}

func NewIdentityQueries(users UserReadStore, memberships MembershipReadStore, companies CompanyReadStore) IdentityQueries {
	return &identityQueriesImpl{
		users:       users,
		memberships: memberships,
		companies:   companies,
	}
}

func (q *identityQueriesImpl) Resolve(ctx context.Context, userID string) (*ResolvedIdentity, error) {
	u, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, err
	}

	memberships, err := q.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	identity := &ResolvedIdentity{
		UserID:         u.ID,
		Email:          u.Email,
		Name:           u.Name,
		IsAdmin:        u.IsAdmin,
		IsSuspended:    u.IsSuspended,
		IsCompanyAdmin: company.HasAdmin(memberships),
	}

	primary := company.PrimaryMembership(memberships)
	if primary == nil {
		return identity, nil
	}
	identity.CompanyID = &primary.CompanyID

	c, err := q.companies.FindByID(ctx, primary.CompanyID)
	if err != nil {
		// A dangling membership row must not hide the user's identity.
		if infra.IsKind(err, infra.KindNotFound) {
			return identity, nil
		}
		return nil, err
	}
	identity.CompanyName = &c.Name

	return identity, nil
}
