package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bikefleet/internal/domain/slot"
	"bikefleet/internal/infra/jobqueue"
	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/pkg/errs"
	"bikefleet/internal/usecase/commands"
)

// SlotSource lists the active fixed-slot subscriptions.
type SlotSource interface {
	ActiveSlots(ctx context.Context) ([]slot.FixedSlot, error)
}

// FixedSlotGenerator materializes fixed-slot subscriptions into RESERVED
// rentals for the job's day. One unavailable bike skips that slot and keeps
// going; only a failure to read the subscriptions fails the whole job.
type FixedSlotGenerator struct {
	slots   SlotSource
	rentals commands.RentalCommands
	clock   clock.Clock
	logger  *slog.Logger
}

func NewFixedSlotGenerator(slots SlotSource, rentals commands.RentalCommands, clk clock.Clock, logger *slog.Logger) *FixedSlotGenerator {
	return &FixedSlotGenerator{
		slots:   slots,
		rentals: rentals,
		clock:   clk,
		logger:  logger,
	}
}

func (g *FixedSlotGenerator) Run(ctx context.Context, job *jobqueue.Job) error {
	day, err := time.ParseInLocation(dedupeKeyLayout, job.DedupeKey, g.clock.Now().Location())
	if err != nil {
		return errs.Wrap(err, "invalid day key on fixed-slot job")
	}

	slots, err := g.slots.ActiveSlots(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to list fixed slots")
	}

	var reserved, skipped int
	for _, s := range slots {
		startAt := day.Add(time.Duration(s.SlotHour) * time.Hour)
		_, err := g.rentals.Reserve(ctx, s.UserID, s.BikeID, startAt)
		switch {
		case err == nil:
			reserved++
		case errors.Is(err, errs.ErrBikeNotAvailable):
			// the bike is out with another rider, in repair, or already
			// reserved; the subscription resumes the next day
			skipped++
			g.logger.Warn("fixed slot skipped, bike unavailable",
				"user_id", s.UserID, "bike_id", s.BikeID)
		default:
			skipped++
			g.logger.Error("fixed slot reservation failed",
				"user_id", s.UserID, "bike_id", s.BikeID, "error", err)
		}
	}

	g.logger.Info("fixed-slot generation finished",
		"day", job.DedupeKey, "reserved", reserved, "skipped", skipped)
	return nil
}
