package bootstrap

import (
	"context"
	"log/slog"

	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/pkg/config"
	"bikefleet/internal/status"

	"go.uber.org/fx"
)

var StatusModule = fx.Module("status",
	fx.Provide(
		NewStatusBus,
		NewBacklog,
		status.NewPublisher,
	),
)

// NewStatusBus selects the bus backing: in-process for a single instance,
// NATS when NATS_URL points at a shared broker so publishes on one instance
// reach subscribers on another.
func NewStatusBus(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (status.Bus, error) {
	if cfg.NATS.URL == "" {
		return status.NewBus(cfg.Stream.SubscriberBuffer, logger), nil
	}

	bus, cleanup, err := status.NewNATSBus(cfg.NATS.URL, cfg.Stream.SubscriberBuffer, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return bus, nil
}

func NewBacklog(cfg config.Config, clk clock.Clock) *status.Backlog {
	store := status.NewMemoryBacklogStore(cfg.Stream.BacklogCap)
	return status.NewBacklog(store, cfg.Stream.BacklogTTL, clk)
}
