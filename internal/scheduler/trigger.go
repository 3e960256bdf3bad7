// Package scheduler owns time-driven work: the daily trigger that enqueues
// fixed-slot generation, and the worker pool that executes queued jobs.
package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"bikefleet/internal/infra"
	"bikefleet/internal/infra/jobqueue"
	"bikefleet/internal/pkg/clock"
)

// dedupeKeyLayout keys one trigger per calendar day. Restarting the process
// or running several instances can fire the trigger again for the same day;
// the queue's unique key collapses those into one job.
const dedupeKeyLayout = "2006-01-02"

// JobEnqueuer is the slice of the job queue the trigger needs. Satisfied by
// *jobqueue.Queue.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, name, dedupeKey string, payload json.RawMessage) error
}

type DailyTrigger struct {
	queue       JobEnqueuer
	clock       clock.Clock
	triggerHour int
	logger      *slog.Logger
}

func NewDailyTrigger(queue JobEnqueuer, clk clock.Clock, triggerHour int, logger *slog.Logger) *DailyTrigger {
	return &DailyTrigger{
		queue:       queue,
		clock:       clk,
		triggerHour: triggerHour,
		logger:      logger,
	}
}

// Run fires once at startup for the current day, then at triggerHour every
// day until ctx is cancelled.
func (t *DailyTrigger) Run(ctx context.Context) {
	t.Fire(ctx)

	for {
		wait := t.untilNext(t.clock.Now())
		select {
		case <-ctx.Done():
			return
		case <-t.clock.After(wait):
			t.Fire(ctx)
		}
	}
}

// Fire enqueues the fixed-slot job for the current calendar day. A duplicate
// for an already-triggered day is expected operation, reported at info.
func (t *DailyTrigger) Fire(ctx context.Context) {
	day := t.clock.Now().Format(dedupeKeyLayout)
	err := t.queue.Enqueue(ctx, jobqueue.JobGenerateFixedSlot, day, nil)
	switch {
	case err == nil:
		t.logger.Info("fixed-slot generation triggered", "day", day)
	case infra.IsKind(err, infra.KindDuplicateKey):
		t.logger.Info("fixed-slot generation already triggered", "day", day)
	default:
		t.logger.Error("failed to trigger fixed-slot generation", "day", day, "error", err)
	}
}

func (t *DailyTrigger) untilNext(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.triggerHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
