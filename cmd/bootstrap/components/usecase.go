package components

import (
	"cedra-backend/internal/pkg/clock"
	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewIdentityQueries,
		queries.NewCompanyQueries,
		queries.NewAddressQueries,
		queries.NewProductQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCompanyCommands,
		commands.NewAddressCommands,
		commands.NewProductCommands,
		commands.NewCheckoutCommands,
	),
)
