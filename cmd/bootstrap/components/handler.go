package components

import (
	"sparkwash-api/internal/handler"
	"sparkwash-api/internal/handler/api"
	"sparkwash-api/internal/handler/middleware"
	"sparkwash-api/internal/infra/report"
	"sparkwash-api/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		report.NewSummaryPDFRenderer,
		api.NewCatalogHandler,
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewManagerHandler,
		middleware.NewAuthMiddleware,
		NewCheckoutRateLimiter,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	catalog *api.CatalogHandler,
	availability *api.AvailabilityHandler,
	booking *api.BookingHandler,
	payment *api.PaymentHandler,
	manager *api.ManagerHandler,
) handler.Handlers {
	return handler.Handlers{
		Catalog:      catalog,
		Availability: availability,
		Booking:      booking,
		Payment:      payment,
		Manager:      manager,
	}
}

func NewCheckoutRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewCheckoutRateLimiter(cfg.RateLimit)
}
