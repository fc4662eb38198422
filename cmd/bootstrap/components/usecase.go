package components

import (
	"partage/internal/pkg/clock"
	"partage/internal/pkg/config"
	"partage/internal/usecase/commands"
	"partage/internal/usecase/queries"
	"partage/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewOrderCommands,
		NewLineItemCommands,
		commands.NewParticipationCommands,
		commands.NewPickupCommands,
		commands.NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewEligibilityQueries,
	),
)

func NewLineItemCommands(uow shared.UnitOfWork, cat shared.Catalog, cfg config.Config, clk clock.Clock) commands.LineItemCommands {
	return commands.NewLineItemCommands(uow, cat, cfg.Engine.ReservationTTL, clk)
}
