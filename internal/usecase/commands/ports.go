package commands

import (
	"context"

	"bikefleet/internal/domain/bike"
	"bikefleet/internal/domain/rental"
	"bikefleet/internal/domain/sos"
	"bikefleet/internal/infra/repository"

	"github.com/google/uuid"
)

// Repository ports are declared here, on the consumer side; the pgx
// implementations live in internal/infra/repository.

type RentalRepository interface {
	Create(ctx context.Context, tx repository.DBTX, r *rental.Rental) error
	FindByIDForUpdate(ctx context.Context, tx repository.DBTX, id uuid.UUID) (*rental.Rental, error)
	FindReservedByUserAndBike(ctx context.Context, tx repository.DBTX, userID, bikeID uuid.UUID) (*rental.Rental, error)
	Update(ctx context.Context, tx repository.DBTX, r *rental.Rental) error
}

type BikeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*bike.Bike, error)
	FindByChip(ctx context.Context, chipID string) (*bike.Bike, error)
	CompareAndSetStatus(ctx context.Context, tx repository.DBTX, id uuid.UUID, from, to bike.Status) error
	SetStatus(ctx context.Context, tx repository.DBTX, id uuid.UUID, to bike.Status) error
}

type SOSRepository interface {
	Create(ctx context.Context, tx repository.DBTX, req *sos.Request) error
	FindByIDForUpdate(ctx context.Context, tx repository.DBTX, id uuid.UUID) (*sos.Request, error)
	Update(ctx context.Context, tx repository.DBTX, req *sos.Request) error
}

// CardDirectory resolves a station-terminal card tap to a rider.
type CardDirectory interface {
	FindUserByCardUID(ctx context.Context, cardUID string) (uuid.UUID, error)
}

// AgentDirectory validates SOS agent identities before dispatch.
type AgentDirectory interface {
	AgentExists(ctx context.Context, agentID uuid.UUID) (bool, error)
}

// StatusPublisher routes a state change to the recipient's live stream and
// backlog. Implemented by status.Publisher; never returns an error because
// delivery failures must not fail the producing transition.
type StatusPublisher interface {
	Notify(recipientID uuid.UUID, msgType string, payload any)
	NotifyBikeStatus(recipientID, bikeID uuid.UUID, bikeStatus string)
}

// SOSNotifier pushes out-of-band notifications (push/SMS) on SOS state entry.
// The transport is an external collaborator.
type SOSNotifier interface {
	NotifyDispatched(ctx context.Context, req *sos.Request)
	NotifyResolved(ctx context.Context, req *sos.Request)
}

// RentalEnder is the slice of the rental commands the SOS workflow drives
// when a resolution terminates the underlying rental.
type RentalEnder interface {
	EndBySOS(ctx context.Context, rentalID, sosID uuid.UUID, solvable bool) (*rental.Rental, error)
}
