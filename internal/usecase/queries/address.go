package queries

import "context"

type AddressReadStore interface {
	// ListVisibleToUser returns the user's personal addresses plus company
	// addresses of their companies that are shared or private to them,
	// newest first.
	ListVisibleToUser(ctx context.Context, userID string) ([]AddressView, error)
}

type AddressQueries interface {
	ListMine(ctx context.Context, userID string) ([]AddressView, error)
}

type addressQueriesImpl struct {
	addresses AddressReadStore
}

func NewAddressQueries(addresses AddressReadStore) AddressQueries {
	return &addressQueriesImpl{addresses: addresses}
}

func (q *addressQueriesImpl) ListMine(ctx context.Context, userID string) ([]AddressView, error) {
	return q.addresses.ListVisibleToUser(ctx, userID)
}
