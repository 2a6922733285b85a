package bootstrap

import (
	"context"

	"lodge-booking/internal/infra/db"
	"lodge-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
	PoolAdapters,
)

// PoolAdapters exposes a *pgxpool.Pool through the interfaces the stores depend on.
var PoolAdapters = fx.Provide(
	func(pool *pgxpool.Pool) db.DBTX { return pool },
	func(pool *pgxpool.Pool) db.TxBeginner { return pool },
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
