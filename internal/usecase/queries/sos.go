package queries

import (
	"context"

	"bikefleet/internal/domain/principal"
	"bikefleet/internal/infra"
	"bikefleet/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSOSNotFound = errs.New("sos request not found")
	ErrSOSAccess   = errs.New("sos access denied")
)

type SOSQueries interface {
	GetByID(ctx context.Context, requester uuid.UUID, role principal.Role, id uuid.UUID) (*SOSView, error)
	ListOpen(ctx context.Context) ([]SOSView, error)
}

type SOSReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SOSView, error)
	ListByStatus(ctx context.Context, statuses []string) ([]SOSView, error)
}

type sosQueriesImpl struct {
	readStore SOSReadStore
}

func NewSOSQueries(readStore SOSReadStore) SOSQueries {
	return &sosQueriesImpl{
		readStore: readStore,
	}
}

// GetByID lets the reporter see their own ticket; staff, admin and agents see
// all tickets.
func (q *sosQueriesImpl) GetByID(ctx context.Context, requester uuid.UUID, role principal.Role, id uuid.UUID) (*SOSView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSOSNotFound
		}
		return nil, err
	}

	if role == principal.RoleRider && view.UserID != requester {
		return nil, ErrSOSAccess
	}
	return view, nil
}

// ListOpen returns the dispatch board: tickets still awaiting an agent or in
// the field.
func (q *sosQueriesImpl) ListOpen(ctx context.Context) ([]SOSView, error) {
	return q.readStore.ListByStatus(ctx, []string{"open", "dispatched"})
}
