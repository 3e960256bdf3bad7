package queries

import (
	"context"

	"bikefleet/internal/domain/principal"
	"bikefleet/internal/infra"
	"bikefleet/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRentalNotFound = errs.New("rental not found")
	ErrRentalAccess   = errs.New("rental access denied")
)

type RentalQueries interface {
	GetByID(ctx context.Context, requester uuid.UUID, role principal.Role, id uuid.UUID) (*RentalView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RentalListItem, error)
}

type RentalReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RentalListItem, error)
}

type rentalQueriesImpl struct {
	readStore RentalReadStore
}

func NewRentalQueries(readStore RentalReadStore) RentalQueries {
	return &rentalQueriesImpl{
		readStore: readStore,
	}
}

// GetByID lets riders see only their own rentals; staff and admin see all.
func (q *rentalQueriesImpl) GetByID(ctx context.Context, requester uuid.UUID, role principal.Role, id uuid.UUID) (*RentalView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}

	if !role.CanForceEnd() && view.UserID != requester {
		return nil, ErrRentalAccess
	}
	return view, nil
}

func (q *rentalQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]RentalListItem, error) {
	return q.readStore.ListByUser(ctx, userID)
}
