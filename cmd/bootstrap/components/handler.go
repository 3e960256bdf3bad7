package components

import (
	"bikefleet/internal/handler"
	"bikefleet/internal/handler/api"
	"bikefleet/internal/handler/middleware"
	"bikefleet/internal/pkg/config"
	"bikefleet/internal/status"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRentalHandler,
		api.NewSOSHandler,
		NewEventsHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewEventsHandler(bus status.Bus, backlog *status.Backlog, cfg config.Config) *api.EventsHandler {
	return api.NewEventsHandler(bus, backlog, cfg.Stream.HeartbeatInterval)
}
