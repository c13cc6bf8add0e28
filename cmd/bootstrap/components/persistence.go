package components

import (
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/infra/readstore"
	"cedra-backend/internal/infra/repository"
	"cedra-backend/internal/infra/uow"
	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewMembershipReadStore,
			fx.As(new(queries.MembershipReadStore)),
		),
		fx.Annotate(
			readstore.NewCompanyReadStore,
			fx.As(new(queries.CompanyReadStore)),
		),
		fx.Annotate(
			readstore.NewAddressReadStore,
			fx.As(new(queries.AddressReadStore)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductReadStore)),
		),
		fx.Annotate(
			readstore.NewCategoryReadStore,
			fx.As(new(queries.CategoryReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewAddressRepository,
			fx.As(new(commands.AddressWriteRepository)),
		),
		fx.Annotate(
			repository.NewProductRepository,
			fx.As(new(commands.ProductWriteRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
