package queries

import "context"

type ProductReadStore interface {
	List(ctx context.Context) ([]ProductView, error)
	SearchByName(ctx context.Context, q string) ([]ProductView, error)
}

type CategoryReadStore interface {
	ListCategories(ctx context.Context) ([]CategoryView, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]CategoryView, error)
}

type ProductQueries interface {
	List(ctx context.Context) ([]ProductView, error)
	Search(ctx context.Context, q string) ([]ProductView, error)
	Categories(ctx context.Context) ([]CategoryView, error)
	Subcategories(ctx context.Context, categoryID int64) ([]CategoryView, error)
}

type productQueriesImpl struct {
	products   ProductReadStore
	categories CategoryReadStore
}

func NewProductQueries(products ProductReadStore, categories CategoryReadStore) ProductQueries {
	return &productQueriesImpl{
		products:   products,
		categories: categories,
	}
}

func (q *productQueriesImpl) List(ctx context.Context) ([]ProductView, error) {
	return q.products.List(ctx)
}

func (q *productQueriesImpl) Search(ctx context.Context, query string) ([]ProductView, error) {
	return q.products.SearchByName(ctx, query)
}

func (q *productQueriesImpl) Categories(ctx context.Context) ([]CategoryView, error) {
	return q.categories.ListCategories(ctx)
}

func (q *productQueriesImpl) Subcategories(ctx context.Context, categoryID int64) ([]CategoryView, error) {
	return q.categories.ListSubcategories(ctx, categoryID)
}
