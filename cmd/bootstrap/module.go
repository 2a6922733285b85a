package bootstrap

import (
	"lodge-booking/cmd/bootstrap/components"
	"lodge-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// Module wires the application for cfg. The store driver picks between Postgres and the
// in-memory store; everything above the ports is the same either way.
func Module(cfg config.Config) fx.Option {
	store := fx.Options(DBModule, components.PostgresStoreModule)
	if cfg.Store.Driver == config.StoreDriverMemory {
		store = components.MemoryStoreModule
	}

	return fx.Options(
		fx.Supply(cfg),
		store,
		JWTModule,
		components.UseCaseModule,
		components.HandlerModule,
	)
}
