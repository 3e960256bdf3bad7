package components

import (
	"time"

	"bikefleet/internal/domain/rental"
	"bikefleet/internal/infra/notify"
	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/pkg/config"
	"bikefleet/internal/status"
	"bikefleet/internal/usecase"
	"bikefleet/internal/usecase/commands"
	"bikefleet/internal/usecase/queries"
	"bikefleet/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPriceCalculator,
	fx.Annotate(
		shared.NewPgxTxRunner,
		fx.As(new(shared.TxRunner)),
	),
	fx.Annotate(
		func(p *status.Publisher) *status.Publisher { return p },
		fx.As(new(commands.StatusPublisher)),
	),
	fx.Annotate(
		notify.NewLogNotifier,
		fx.As(new(commands.SOSNotifier)),
	),
)

// NewPriceCalculator applies the configured overdue window to the default
// per-minute pricing policy.
func NewPriceCalculator(cfg config.Config) rental.PriceCalculator {
	calc := rental.NewDefaultPriceCalculator()
	calc.PenaltyAfter = time.Duration(cfg.Scheduler.PenaltyHours) * time.Hour
	return calc
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRentalCommands,
		fx.Annotate(
			func(rc commands.RentalCommands) commands.RentalCommands { return rc },
			fx.As(new(commands.RentalEnder)),
		),
		commands.NewSOSCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRentalQueries,
		queries.NewSOSQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
