package components

import (
	"log/slog"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/config"
	"lodge-booking/internal/usecase"
	"lodge-booking/internal/usecase/commands"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/internal/usecase/selection"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	usecaseSelectionModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	availability.NewResolver,
	conflict.NewDetector,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewQuoteCommands,
		func(
			rooms usecase.RoomReader,
			settings usecase.SettingsReader,
			bookings usecase.BookingReader,
			holds usecase.BookingWriter,
			detector *conflict.Detector,
			clk clock.Clock,
			cfg config.Config,
			logger *slog.Logger,
		) commands.BookingCommands {
			return commands.NewBookingCommands(rooms, settings, bookings, holds, detector, clk, cfg.Store.HoldTTL, cfg.Selection.MaxNights, logger)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewPriceQueries,
		queries.NewConflictQueries,
	),
)

var usecaseSelectionModule = fx.Module("usecase/selection",
	fx.Provide(
		func(
			rooms usecase.RoomReader,
			avail usecase.AvailabilityReader,
			bookings usecase.BookingReader,
			detector *conflict.Detector,
			cfg config.Config,
			logger *slog.Logger,
		) selection.Validator {
			return usecase.NewIntervalValidator(rooms, avail, bookings, detector, cfg.Selection.MaxNights, logger)
		},
		func(v selection.Validator, months queries.AvailabilityQueries, clk clock.Clock, cfg config.Config, logger *slog.Logger) *selection.Registry {
			return selection.NewRegistry(v, months, clk, cfg.Selection.IdleTTL, logger)
		},
	),
)
