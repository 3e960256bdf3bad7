package commands

import (
	"context"
	"time"

	"bikefleet/internal/domain/bike"
	"bikefleet/internal/domain/rental"
	"bikefleet/internal/infra"
	"bikefleet/internal/infra/repository"
	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/pkg/errs"
	"bikefleet/internal/status"
	"bikefleet/internal/usecase/shared"

	"github.com/google/uuid"
)

// RentalCommands governs the rental lifecycle:
// RESERVED → ACTIVE → {ENDED, CANCELLED}, with SOS resolution able to force
// ACTIVE → ENDED out of band. Operations on the same rental or bike serialize
// through row locks and a compare-and-swap on the bike's status; at most one
// non-terminal rental exists per bike at any instant.
type RentalCommands interface {
	Start(ctx context.Context, userID, bikeID uuid.UUID) (*rental.Rental, error)
	StartByCard(ctx context.Context, chipID, cardUID string) (*rental.Rental, error)
	Reserve(ctx context.Context, userID, bikeID uuid.UUID, startAt time.Time) (*rental.Rental, error)
	EndByUser(ctx context.Context, userID, rentalID uuid.UUID) (*rental.Rental, error)
	EndByStaff(ctx context.Context, rentalID, endStation uuid.UUID, reason string, endTime *time.Time) (*rental.Rental, error)
	Cancel(ctx context.Context, rentalID uuid.UUID, reason string, bikeStatus *bike.Status) (*rental.Rental, error)
	EndBySOS(ctx context.Context, rentalID, sosID uuid.UUID, solvable bool) (*rental.Rental, error)
}

type rentalCommandsImpl struct {
	rentalRepo RentalRepository
	bikeRepo   BikeRepository
	cards      CardDirectory
	calculator rental.PriceCalculator
	publisher  StatusPublisher
	tx         shared.TxRunner
	clock      clock.Clock
}

func NewRentalCommands(
	rentalRepo RentalRepository,
	bikeRepo BikeRepository,
	cards CardDirectory,
	calculator rental.PriceCalculator,
	publisher StatusPublisher,
	tx shared.TxRunner,
	clk clock.Clock,
) RentalCommands {
	return &rentalCommandsImpl{
		rentalRepo: rentalRepo,
		bikeRepo:   bikeRepo,
		cards:      cards,
		calculator: calculator,
		publisher:  publisher,
		tx:         tx,
		clock:      clk,
	}
}

func (c *rentalCommandsImpl) Start(ctx context.Context, userID, bikeID uuid.UUID) (*rental.Rental, error) {
	bikeEntity, err := c.bikeRepo.FindByID(ctx, bikeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBikeNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return c.startForBike(ctx, userID, bikeEntity)
}

// StartByCard is the terminal variant: the bike is identified by its IoT chip
// and the rider by the tapped card.
func (c *rentalCommandsImpl) StartByCard(ctx context.Context, chipID, cardUID string) (*rental.Rental, error) {
	if chipID == "" || cardUID == "" {
		return nil, errs.Mark(errs.New("chip id and card uid required"), errs.ErrValidation)
	}

	userID, err := c.cards.FindUserByCardUID(ctx, cardUID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	bikeEntity, err := c.bikeRepo.FindByChip(ctx, chipID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBikeNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return c.startForBike(ctx, userID, bikeEntity)
}

func (c *rentalCommandsImpl) startForBike(ctx context.Context, userID uuid.UUID, bikeEntity *bike.Bike) (*rental.Rental, error) {
	now := c.clock.Now()
	stationStart := uuid.Nil
	if s := bikeEntity.StationID(); s != nil {
		stationStart = *s
	}

	var started *rental.Rental
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		// A rider starting a bike they hold a materialized reservation on is
		// engaging that reservation, not opening a second rental.
		reserved, err := c.rentalRepo.FindReservedByUserAndBike(ctx, tx, userID, bikeEntity.ID())
		switch {
		case err == nil:
			if actErr := reserved.Activate(now); actErr != nil {
				return errs.Mark(actErr, errs.ErrInvalidState)
			}
			if updErr := c.rentalRepo.Update(ctx, tx, reserved); updErr != nil {
				return errs.Mark(updErr, errs.ErrDatabaseOperationFailed)
			}
			started = reserved
			return nil
		case infra.IsKind(err, infra.KindNotFound):
			// fall through to a fresh start
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if casErr := c.bikeRepo.CompareAndSetStatus(ctx, tx, bikeEntity.ID(), bike.StatusAvailable, bike.StatusRented); casErr != nil {
			if infra.IsKind(casErr, infra.KindConflict) {
				return errs.Mark(casErr, errs.ErrBikeNotAvailable)
			}
			return errs.Mark(casErr, errs.ErrDatabaseOperationFailed)
		}

		fresh := rental.NewActive(bikeEntity.ID(), userID, stationStart, now)
		if createErr := c.rentalRepo.Create(ctx, tx, fresh); createErr != nil {
			return errs.Mark(createErr, errs.ErrDatabaseOperationFailed)
		}
		started = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishRentalState(started, bike.StatusRented)
	return started, nil
}

// Reserve creates a RESERVED rental holding the bike for a fixed-slot
// reservation; the bike is engaged administratively but not yet physically.
func (c *rentalCommandsImpl) Reserve(ctx context.Context, userID, bikeID uuid.UUID, startAt time.Time) (*rental.Rental, error) {
	bikeEntity, err := c.bikeRepo.FindByID(ctx, bikeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBikeNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	// Fast rejection; the compare-and-swap inside the transaction is
	// authoritative.
	if !bikeEntity.Rentable() {
		return nil, errs.Mark(errs.Newf("bike %s is not available", bikeID), errs.ErrBikeNotAvailable)
	}

	stationStart := uuid.Nil
	if s := bikeEntity.StationID(); s != nil {
		stationStart = *s
	}

	var reserved *rental.Rental
	err = c.tx.Run(ctx, func(tx repository.DBTX) error {
		if casErr := c.bikeRepo.CompareAndSetStatus(ctx, tx, bikeID, bike.StatusAvailable, bike.StatusRented); casErr != nil {
			if infra.IsKind(casErr, infra.KindConflict) {
				return errs.Mark(casErr, errs.ErrBikeNotAvailable)
			}
			return errs.Mark(casErr, errs.ErrDatabaseOperationFailed)
		}
		r := rental.NewReserved(bikeID, userID, stationStart, startAt)
		if createErr := c.rentalRepo.Create(ctx, tx, r); createErr != nil {
			return errs.Mark(createErr, errs.ErrDatabaseOperationFailed)
		}
		reserved = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishRentalState(reserved, bike.StatusRented)
	return reserved, nil
}

func (c *rentalCommandsImpl) EndByUser(ctx context.Context, userID, rentalID uuid.UUID) (*rental.Rental, error) {
	var ended *rental.Rental
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		current, err := c.rentalRepo.FindByIDForUpdate(ctx, tx, rentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRentalNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !current.OwnedBy(userID) {
			return errs.Mark(errs.Newf("rental %s belongs to another user", rentalID), errs.ErrRentalNotOwned)
		}

		// Riders return the bike where they took it; staff corrections go
		// through EndByStaff with an explicit end station.
		ended, err = c.endCore(ctx, tx, current, current.StationStart(), c.clock.Now(), nil, bike.StatusAvailable, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.publishRentalState(ended, bike.StatusAvailable)
	return ended, nil
}

// EndByStaff force-ends any ACTIVE rental, for abandoned or overdue bikes.
// The caller's staff/admin authority is enforced at the transport boundary;
// reason is mandatory and recorded on the rental.
func (c *rentalCommandsImpl) EndByStaff(ctx context.Context, rentalID, endStation uuid.UUID, reason string, endTime *time.Time) (*rental.Rental, error) {
	if reason == "" {
		return nil, errs.Mark(errs.New("reason required for staff termination"), errs.ErrReasonRequired)
	}

	now := c.clock.Now()
	effectiveEnd := now
	if endTime != nil {
		if endTime.After(now) {
			return nil, errs.Mark(errs.New("end time in the future"), errs.ErrEndTimeInFuture)
		}
		effectiveEnd = *endTime
	}

	var ended *rental.Rental
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		current, err := c.rentalRepo.FindByIDForUpdate(ctx, tx, rentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRentalNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if effectiveEnd.Before(current.StartedAt()) {
			return errs.Mark(errs.New("end time before rental start"), errs.ErrEndTimeBeforeStart)
		}

		ended, err = c.endCore(ctx, tx, current, endStation, effectiveEnd, &reason, bike.StatusAvailable, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.publishRentalState(ended, bike.StatusAvailable)
	return ended, nil
}

// EndBySOS is the internal entry for SOS resolution. solvable=false means the
// bike could not be recovered: it is flagged broken and the rider is not
// charged for the episode.
func (c *rentalCommandsImpl) EndBySOS(ctx context.Context, rentalID, sosID uuid.UUID, solvable bool) (*rental.Rental, error) {
	reason := rental.SOSReason(sosID)
	resultingBike := bike.StatusAvailable
	charge := true
	if !solvable {
		resultingBike = bike.StatusBroken
		charge = false
	}

	var ended *rental.Rental
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		current, err := c.rentalRepo.FindByIDForUpdate(ctx, tx, rentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRentalNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		ended, err = c.endCore(ctx, tx, current, current.StationStart(), c.clock.Now(), &reason, resultingBike, charge)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.publishRentalState(ended, resultingBike)
	return ended, nil
}

// Cancel aborts a RESERVED rental. bikeStatus optionally parks the released
// bike in MAINTENANCE/BROKEN when the cancellation revealed a defect.
func (c *rentalCommandsImpl) Cancel(ctx context.Context, rentalID uuid.UUID, reason string, bikeStatus *bike.Status) (*rental.Rental, error) {
	if reason == "" {
		return nil, errs.Mark(errs.New("reason required for cancellation"), errs.ErrReasonRequired)
	}
	resultingBike := bike.StatusAvailable
	if bikeStatus != nil {
		resultingBike = *bikeStatus
	}

	var cancelled *rental.Rental
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		current, err := c.rentalRepo.FindByIDForUpdate(ctx, tx, rentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRentalNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if cancelErr := current.Cancel(reason, c.clock.Now(), resultingBike); cancelErr != nil {
			return errs.Mark(cancelErr, errs.ErrRentalNotReserved)
		}
		if updErr := c.rentalRepo.Update(ctx, tx, current); updErr != nil {
			return errs.Mark(updErr, errs.ErrDatabaseOperationFailed)
		}
		if bikeErr := c.bikeRepo.SetStatus(ctx, tx, current.BikeID(), resultingBike); bikeErr != nil {
			return errs.Mark(bikeErr, errs.ErrDatabaseOperationFailed)
		}
		cancelled = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishRentalState(cancelled, resultingBike)
	return cancelled, nil
}

// endCore applies the ACTIVE → ENDED transition and the bike release as one
// unit inside the caller's transaction.
func (c *rentalCommandsImpl) endCore(
	ctx context.Context,
	tx repository.DBTX,
	current *rental.Rental,
	endStation uuid.UUID,
	endTime time.Time,
	reason *string,
	resultingBike bike.Status,
	charge bool,
) (*rental.Rental, error) {
	var priceCents int64
	if charge {
		priceCents = c.calculator.CalculatePriceCents(rental.PriceContext{
			RentalID: current.ID().String(),
			UserID:   current.UserID().String(),
		}, endTime.Sub(current.StartedAt()))
	}

	if err := current.End(endStation, endTime, priceCents, reason); err != nil {
		return nil, errs.Mark(err, errs.ErrRentalNotActive)
	}
	if err := c.rentalRepo.Update(ctx, tx, current); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := c.bikeRepo.SetStatus(ctx, tx, current.BikeID(), resultingBike); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return current, nil
}

// publishRentalState pushes the rental and bike frames to the rider's stream
// after the transaction committed. Delivery is best-effort: the backlog
// catches disconnected recipients.
func (c *rentalCommandsImpl) publishRentalState(r *rental.Rental, bikeStatus bike.Status) {
	if r == nil {
		return
	}
	c.publisher.Notify(r.UserID(), status.TypeRentalStatus, status.RentalStatusPayload{
		RentalID:        r.ID().String(),
		Status:          r.Status().String(),
		TotalPriceCents: r.TotalPriceCents(),
		Reason:          r.TerminationReason(),
	})
	c.publisher.NotifyBikeStatus(r.UserID(), r.BikeID(), bikeStatus.String())
}
