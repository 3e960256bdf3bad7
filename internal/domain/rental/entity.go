package rental

import (
	"errors"
	"fmt"
	"time"

	"bikefleet/internal/domain/bike"

	"github.com/google/uuid"
)

var (
	ErrNotActive         = errors.New("rental is not active")
	ErrNotReserved       = errors.New("rental is not reserved")
	ErrAlreadyTerminal   = errors.New("rental already terminated")
	ErrReasonRequired    = errors.New("termination reason required")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidStatus     = errors.New("invalid rental status")
	ErrInvalidBikeStatus = errors.New("invalid resulting bike status")
)

// Rental is the root aggregate for one rental episode. Mutation goes through
// the transition methods only; the invariant that at most one non-terminal
// rental references a bike is enforced at the persistence boundary with a
// compare-and-swap on the bike's status.
type Rental struct {
	id                uuid.UUID
	bikeID            uuid.UUID
	userID            uuid.UUID
	stationStart      uuid.UUID
	stationEnd        *uuid.UUID
	startedAt         time.Time
	endedAt           *time.Time
	status            Status
	terminationReason *string
	totalPriceCents   *int64
}

// NewActive creates a rental in ACTIVE state for a bike that has just been
// engaged. The caller owns the atomic bike co-transition.
func NewActive(bikeID, userID, stationStart uuid.UUID, startedAt time.Time) *Rental {
	return &Rental{
		id:           uuid.New(),
		bikeID:       bikeID,
		userID:       userID,
		stationStart: stationStart,
		startedAt:    startedAt,
		status:       StatusActive,
	}
}

// NewReserved creates a rental awaiting physical engagement of the bike,
// as materialized for fixed-slot reservations.
func NewReserved(bikeID, userID, stationStart uuid.UUID, startedAt time.Time) *Rental {
	r := NewActive(bikeID, userID, stationStart, startedAt)
	r.status = StatusReserved
	return r
}

func Reconstruct(
	id, bikeID, userID, stationStart uuid.UUID,
	stationEnd *uuid.UUID,
	startedAt time.Time,
	endedAt *time.Time,
	status Status,
	terminationReason *string,
	totalPriceCents *int64,
) (*Rental, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Rental{
		id:                id,
		bikeID:            bikeID,
		userID:            userID,
		stationStart:      stationStart,
		stationEnd:        stationEnd,
		startedAt:         startedAt,
		endedAt:           endedAt,
		status:            status,
		terminationReason: terminationReason,
		totalPriceCents:   totalPriceCents,
	}, nil
}

// Activate engages the bike for a RESERVED rental.
func (r *Rental) Activate(at time.Time) error {
	if r.status != StatusReserved {
		return ErrNotReserved
	}
	r.status = StatusActive
	r.startedAt = at
	return nil
}

// End closes an ACTIVE rental at endTime with the computed price. A reason is
// recorded for staff/admin and SOS terminations; user-initiated ends pass none.
func (r *Rental) End(endStation uuid.UUID, endTime time.Time, priceCents int64, reason *string) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if endTime.Before(r.startedAt) {
		return ErrEndBeforeStart
	}
	r.status = StatusEnded
	r.stationEnd = &endStation
	r.endedAt = &endTime
	r.totalPriceCents = &priceCents
	r.terminationReason = reason
	return nil
}

// Cancel aborts a RESERVED rental before the bike was ever engaged.
// resultingBikeStatus is where the released bike should land; cancellation can
// reveal a defect, in which case the caller passes MAINTENANCE or BROKEN.
func (r *Rental) Cancel(reason string, at time.Time, resultingBikeStatus bike.Status) error {
	if r.status != StatusReserved {
		return ErrNotReserved
	}
	if reason == "" {
		return ErrReasonRequired
	}
	if !resultingBikeStatus.IsValid() || resultingBikeStatus == bike.StatusRented {
		return ErrInvalidBikeStatus
	}
	r.status = StatusCancelled
	r.endedAt = &at
	r.terminationReason = &reason
	return nil
}

// SOSReason formats the termination reason recorded when an SOS resolution
// force-ends the rental.
func SOSReason(sosID uuid.UUID) string {
	return fmt.Sprintf("sos:%s", sosID)
}

func (r *Rental) ID() uuid.UUID              { return r.id }
func (r *Rental) BikeID() uuid.UUID          { return r.bikeID }
func (r *Rental) UserID() uuid.UUID          { return r.userID }
func (r *Rental) StationStart() uuid.UUID    { return r.stationStart }
func (r *Rental) StationEnd() *uuid.UUID     { return r.stationEnd }
func (r *Rental) StartedAt() time.Time       { return r.startedAt }
func (r *Rental) EndedAt() *time.Time        { return r.endedAt }
func (r *Rental) Status() Status             { return r.status }
func (r *Rental) TerminationReason() *string { return r.terminationReason }
func (r *Rental) TotalPriceCents() *int64    { return r.totalPriceCents }

func (r *Rental) IsActive() bool {
	return r.status == StatusActive
}

func (r *Rental) IsTerminal() bool {
	return r.status.IsTerminal()
}

func (r *Rental) OwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}
