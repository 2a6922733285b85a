package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"lodge-booking/internal/handler/api"
	"lodge-booking/internal/handler/middleware"
	"lodge-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Handlers is filled by fx from the providers in the handler module.
type Handlers struct {
	fx.In

	Availability *api.AvailabilityHandler
	Pricing      *api.PricingHandler
	Booking      *api.BookingHandler
	Selection    *api.SelectionHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.PropertyDay},
			{Method: http.MethodGet, Path: "/calendar", Handler: h.Availability.Month},
			{Method: http.MethodGet, Path: "/rooms/:id/availability", Handler: h.Availability.RoomDay},
			{Method: http.MethodPost, Path: "/quotes", Handler: h.Pricing.Quote},
			{Method: http.MethodPost, Path: "/conflicts", Handler: h.Booking.CheckConflict},
			{Method: http.MethodPost, Path: "/holds/verify", Handler: h.Booking.VerifyHold},
		})

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/prepare", Handler: h.Booking.Prepare},
				{Method: http.MethodGet, Path: "/:id/price", Handler: h.Pricing.BookingPrice},
			})
		}

		selections := apiGroup.Group("/selections")
		{
			addRoutes(selections, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Selection.Open},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Selection.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Selection.Close},
				{Method: http.MethodPost, Path: "/:id/click", Handler: h.Selection.Click},
				{Method: http.MethodGet, Path: "/:id/hover", Handler: h.Selection.Hover},
				{Method: http.MethodPost, Path: "/:id/navigate", Handler: h.Selection.Navigate},
				{Method: http.MethodPost, Path: "/:id/reset", Handler: h.Selection.Reset},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Handle(r.Method, r.Path, r.Handler)
		}
	}
}
