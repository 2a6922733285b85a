package bootstrap

import (
	"lodge-booking/internal/handler/api"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/config"
	"lodge-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewHoldTokenService,
			fx.As(new(api.HoldTokenService)),
		),
	),
)

func NewHoldTokenService(cfg config.Config, clk clock.Clock) *jwt.Service {
	return jwt.NewService(cfg.HoldToken.Secret, clk)
}
