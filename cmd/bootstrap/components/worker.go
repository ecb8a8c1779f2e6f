package components

import (
	"context"

	"sparkwash-api/internal/pkg/config"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewPoller,
	),
)

func NewPoller(lc fx.Lifecycle, payments commands.PaymentCommands, cfg config.Config) *worker.Poller {
	poller := worker.NewPoller(payments, cfg.Payments)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return poller.Shutdown(ctx)
		},
	})

	return poller
}
