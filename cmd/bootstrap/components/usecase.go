package components

import (
	"sparkwash-api/internal/infra/paystack"
	"sparkwash-api/internal/pkg/clock"
	"sparkwash-api/internal/pkg/config"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewPaymentGateway,
		fx.As(new(commands.PaymentGateway)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewPaymentUseCase,
		commands.NewCapacityUseCase,
		commands.NewBlockedSlotUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewCatalogQueries,
		queries.NewPaymentQueries,
		queries.NewManagerScheduleQueries,
	),
)

func NewPaymentGateway(cfg config.Config) *paystack.Client {
	return paystack.NewClient(cfg.Paystack)
}
