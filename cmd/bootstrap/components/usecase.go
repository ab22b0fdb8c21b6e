package components

import (
	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/usecase/commands"
	"tg-storefront/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	user.NewRandomCodeGenerator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReferralUseCase,
		commands.NewUserUseCase,
		commands.NewStockUseCase,
		commands.NewCatalogUseCase,
		commands.NewCartUseCase,
		commands.NewSessionUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCatalogQueries,
		queries.NewCartQueries,
	),
)
