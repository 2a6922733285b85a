package components

import (
	"lodge-booking/internal/handler"
	"lodge-booking/internal/handler/api"
	"lodge-booking/internal/usecase/selection"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewPricingHandler,
		api.NewBookingHandler,
		func(r *selection.Registry) api.SelectionSessions { return r },
		api.NewSelectionHandler,
	),
	fx.Invoke(handler.NewRouter),
)
