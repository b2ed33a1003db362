package components

import (
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/config"
	"courtside/internal/pkg/lockmap"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	lockmap.New,
	func(cfg config.Config) config.EngineConfig {
		return cfg.Engine
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewMaintenanceCommands,
		commands.NewScheduleCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
	),
)
