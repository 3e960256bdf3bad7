package bootstrap

import (
	"context"
	"log/slog"

	"bikefleet/internal/infra/jobqueue"
	"bikefleet/internal/infra/repository"
	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/pkg/config"
	"bikefleet/internal/scheduler"
	"bikefleet/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		jobqueue.NewQueue,
		NewDailyTrigger,
		NewFixedSlotGenerator,
		NewWorkerPool,
	),
	fx.Invoke(startScheduler),
)

func NewDailyTrigger(queue *jobqueue.Queue, clk clock.Clock, cfg config.Config, logger *slog.Logger) *scheduler.DailyTrigger {
	return scheduler.NewDailyTrigger(queue, clk, cfg.Scheduler.TriggerHour, logger)
}

func NewFixedSlotGenerator(pool *pgxpool.Pool, rentals commands.RentalCommands, clk clock.Clock, logger *slog.Logger) *scheduler.FixedSlotGenerator {
	slots := repository.NewFixedSlotRepository(pool)
	return scheduler.NewFixedSlotGenerator(slots, rentals, clk, logger)
}

func NewWorkerPool(queue *jobqueue.Queue, cfg config.Config, logger *slog.Logger, generator *scheduler.FixedSlotGenerator) *scheduler.WorkerPool {
	pool := scheduler.NewWorkerPool(queue, cfg.Scheduler.WorkerCount, logger)
	pool.Register(jobqueue.JobGenerateFixedSlot, generator)
	return pool
}

func startScheduler(lc fx.Lifecycle, trigger *scheduler.DailyTrigger, pool *scheduler.WorkerPool) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pool.Start(ctx)
			go trigger.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			pool.Stop()
			return nil
		},
	})
}
