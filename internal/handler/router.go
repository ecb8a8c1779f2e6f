package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sparkwash-api/internal/handler/api"
	"sparkwash-api/internal/handler/middleware"
	"sparkwash-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Catalog      *api.CatalogHandler
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	Payment      *api.PaymentHandler
	Manager      *api.ManagerHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, checkoutLimiter *middleware.RateLimiter) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, checkoutLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, handlers Handlers, authMiddleware *middleware.AuthMiddleware, checkoutLimiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/locations", Handler: handlers.Catalog.ListLocations},
			{Method: http.MethodGet, Path: "/services", Handler: handlers.Catalog.ListServices},
			{Method: http.MethodGet, Path: "/availability", Handler: handlers.Availability.GetAvailability},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/verify-slot", Handler: handlers.Booking.VerifySlot},
				{Method: http.MethodPost, Path: "", Handler: handlers.Booking.ConfirmBooking},
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Booking.GetBooking},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/checkout", Handler: handlers.Payment.Checkout, Mw: []gin.HandlerFunc{checkoutLimiter.Limit()}},
				{Method: http.MethodGet, Path: "/verify/:reference", Handler: handlers.Payment.Verify},
				{Method: http.MethodPost, Path: "/cancel/:reference", Handler: handlers.Payment.Cancel},
			})
		}

		manager := apiGroup.Group("/manager")
		manager.Use(authMiddleware.RequireAuth())
		manager.Use(authMiddleware.RequireManager())
		{
			addRoutes(manager, []route{
				{Method: http.MethodGet, Path: "/settings", Handler: handlers.Manager.GetSettings},
				{Method: http.MethodPost, Path: "/settings", Handler: handlers.Manager.SetActiveBays},
				{Method: http.MethodGet, Path: "/blocked-slots", Handler: handlers.Manager.GetBlockedSlots},
				{Method: http.MethodPost, Path: "/blocked-slots", Handler: handlers.Manager.BlockSlot},
				{Method: http.MethodDelete, Path: "/blocked-slots", Handler: handlers.Manager.UnblockSlot},
				{Method: http.MethodGet, Path: "/bookings", Handler: handlers.Manager.GetDaySchedule},
				{Method: http.MethodGet, Path: "/bookings/summary", Handler: handlers.Manager.GetMonthlySummary},
				{Method: http.MethodGet, Path: "/bookings/summary/pdf", Handler: handlers.Manager.GetMonthlySummaryPDF},
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
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
