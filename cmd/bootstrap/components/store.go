package components

import (
	"log/slog"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/infra/memory"
	"lodge-booking/internal/infra/readstore"
	"lodge-booking/internal/infra/writerepo"
	"lodge-booking/internal/pkg/config"
	"lodge-booking/internal/usecase"

	"go.uber.org/fx"
)

var PostgresStoreModule = fx.Module("store/postgres",
	fx.Provide(
		fx.Annotate(
			readstore.NewSettingsReadStore,
			fx.As(new(usecase.RoomReader)),
			fx.As(new(usecase.SettingsReader)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(usecase.BookingReader)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(usecase.AvailabilityReader)),
		),
		fx.Annotate(
			writerepo.NewHoldRepository,
			fx.As(new(usecase.BookingWriter)),
		),
	),
)

var MemoryStoreModule = fx.Module("store/memory",
	fx.Provide(
		NewMemoryStore,
		func(s *memory.Store) usecase.RoomReader { return s },
		func(s *memory.Store) usecase.SettingsReader { return s },
		func(s *memory.Store) usecase.BookingReader { return s },
		func(s *memory.Store) usecase.BookingWriter { return s },
		func(s *memory.Store) usecase.AvailabilityReader { return s },
	),
)

func NewMemoryStore(cfg config.Config, resolver *availability.Resolver, detector *conflict.Detector, logger *slog.Logger) (*memory.Store, error) {
	store := memory.NewStore(resolver, detector)
	if cfg.Store.SeedFile == "" {
		logger.Warn("memory store started without seed; pricing requests fail until settings exist")
		return store, nil
	}
	if err := store.LoadSeed(cfg.Store.SeedFile); err != nil {
		return nil, err
	}
	logger.Info("memory store seeded", "file", cfg.Store.SeedFile)
	return store, nil
}
