package commands

import (
	"context"
	"errors"

	"bikefleet/internal/domain/rental"
	"bikefleet/internal/domain/sos"
	"bikefleet/internal/infra"
	"bikefleet/internal/infra/repository"
	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/pkg/errs"
	"bikefleet/internal/status"
	"bikefleet/internal/usecase/shared"

	"github.com/google/uuid"
)

// SOSCommands drives the emergency-assistance workflow:
// OPEN → DISPATCHED → {RESOLVED, CANCELLED}. Resolution with an unrecoverable
// bike force-ends the underlying rental through RentalEnder.
type SOSCommands interface {
	Create(ctx context.Context, userID, rentalID uuid.UUID, issue string, loc sos.Location, staffNotes *string) (*sos.Request, error)
	Dispatch(ctx context.Context, sosID, agentID uuid.UUID) (*sos.Request, error)
	Confirm(ctx context.Context, sosID uuid.UUID, notes *string, solvable bool) (*sos.Request, error)
	Reject(ctx context.Context, sosID uuid.UUID, reason string) (*sos.Request, error)
	CancelByReporter(ctx context.Context, userID, sosID uuid.UUID, reason string) (*sos.Request, error)
}

type sosCommandsImpl struct {
	sosRepo    SOSRepository
	rentalRepo RentalRepository
	agents     AgentDirectory
	ender      RentalEnder
	publisher  StatusPublisher
	notifier   SOSNotifier
	tx         shared.TxRunner
	clock      clock.Clock
}

func NewSOSCommands(
	sosRepo SOSRepository,
	rentalRepo RentalRepository,
	agents AgentDirectory,
	ender RentalEnder,
	publisher StatusPublisher,
	notifier SOSNotifier,
	tx shared.TxRunner,
	clk clock.Clock,
) SOSCommands {
	return &sosCommandsImpl{
		sosRepo:    sosRepo,
		rentalRepo: rentalRepo,
		agents:     agents,
		ender:      ender,
		publisher:  publisher,
		notifier:   notifier,
		tx:         tx,
		clock:      clk,
	}
}

// Create opens a ticket for the reporter's own ACTIVE rental, snapshotting
// rider and bike so later rental mutation cannot reroute the ticket.
func (c *sosCommandsImpl) Create(ctx context.Context, userID, rentalID uuid.UUID, issue string, loc sos.Location, staffNotes *string) (*sos.Request, error) {
	var created *sos.Request
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		r, err := c.rentalRepo.FindByIDForUpdate(ctx, tx, rentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRentalNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !r.OwnedBy(userID) {
			return errs.Mark(errs.Newf("rental %s belongs to another user", rentalID), errs.ErrRentalNotOwned)
		}
		if !r.IsActive() {
			return errs.Mark(rental.ErrNotActive, errs.ErrRentalNotActive)
		}

		req, err := sos.New(rentalID, r.UserID(), r.BikeID(), issue, loc, staffNotes, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		if createErr := c.sosRepo.Create(ctx, tx, req); createErr != nil {
			return errs.Mark(createErr, errs.ErrDatabaseOperationFailed)
		}
		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishSOSState(created)
	return created, nil
}

func (c *sosCommandsImpl) Dispatch(ctx context.Context, sosID, agentID uuid.UUID) (*sos.Request, error) {
	exists, err := c.agents.AgentExists(ctx, agentID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.Mark(errs.Newf("agent %s not found", agentID), errs.ErrAgentNotFound)
	}

	var dispatched *sos.Request
	err = c.tx.Run(ctx, func(tx repository.DBTX) error {
		req, err := c.findForUpdate(ctx, tx, sosID)
		if err != nil {
			return err
		}
		if dispatchErr := req.Dispatch(agentID, c.clock.Now()); dispatchErr != nil {
			return markSOSTransition(dispatchErr)
		}
		if updErr := c.sosRepo.Update(ctx, tx, req); updErr != nil {
			return errs.Mark(updErr, errs.ErrDatabaseOperationFailed)
		}
		dispatched = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishSOSState(dispatched)
	c.notifier.NotifyDispatched(ctx, dispatched)
	return dispatched, nil
}

// Confirm resolves a dispatched ticket and, if its rental is still ACTIVE,
// terminates that rental in the same call. solvable=false flags the bike
// broken and waives the rider's charge.
func (c *sosCommandsImpl) Confirm(ctx context.Context, sosID uuid.UUID, notes *string, solvable bool) (*sos.Request, error) {
	var confirmed *sos.Request
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		req, err := c.findForUpdate(ctx, tx, sosID)
		if err != nil {
			return err
		}
		if confirmErr := req.Confirm(notes, solvable, c.clock.Now()); confirmErr != nil {
			return markSOSTransition(confirmErr)
		}
		if updErr := c.sosRepo.Update(ctx, tx, req); updErr != nil {
			return errs.Mark(updErr, errs.ErrDatabaseOperationFailed)
		}
		confirmed = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Ending the rental runs in its own transaction: the ticket resolution
	// must survive even if the rental was already terminated concurrently.
	if _, endErr := c.ender.EndBySOS(ctx, confirmed.RentalID(), confirmed.ID(), solvable); endErr != nil {
		if !errors.Is(endErr, errs.ErrRentalNotActive) && !errors.Is(endErr, errs.ErrRentalNotFound) {
			return nil, endErr
		}
	}

	c.publishSOSState(confirmed)
	c.notifier.NotifyResolved(ctx, confirmed)
	return confirmed, nil
}

func (c *sosCommandsImpl) Reject(ctx context.Context, sosID uuid.UUID, reason string) (*sos.Request, error) {
	var rejected *sos.Request
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		req, err := c.findForUpdate(ctx, tx, sosID)
		if err != nil {
			return err
		}
		if rejectErr := req.Reject(reason, c.clock.Now()); rejectErr != nil {
			return markSOSTransition(rejectErr)
		}
		if updErr := c.sosRepo.Update(ctx, tx, req); updErr != nil {
			return errs.Mark(updErr, errs.ErrDatabaseOperationFailed)
		}
		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishSOSState(rejected)
	return rejected, nil
}

func (c *sosCommandsImpl) CancelByReporter(ctx context.Context, userID, sosID uuid.UUID, reason string) (*sos.Request, error) {
	var cancelled *sos.Request
	err := c.tx.Run(ctx, func(tx repository.DBTX) error {
		req, err := c.findForUpdate(ctx, tx, sosID)
		if err != nil {
			return err
		}
		if req.UserID() != userID {
			return errs.Mark(errs.Newf("sos %s belongs to another user", sosID), errs.ErrNotFound)
		}
		if cancelErr := req.CancelByReporter(reason, c.clock.Now()); cancelErr != nil {
			return markSOSTransition(cancelErr)
		}
		if updErr := c.sosRepo.Update(ctx, tx, req); updErr != nil {
			return errs.Mark(updErr, errs.ErrDatabaseOperationFailed)
		}
		cancelled = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishSOSState(cancelled)
	return cancelled, nil
}

func (c *sosCommandsImpl) findForUpdate(ctx context.Context, tx repository.DBTX, sosID uuid.UUID) (*sos.Request, error) {
	req, err := c.sosRepo.FindByIDForUpdate(ctx, tx, sosID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSOSNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return req, nil
}

func markSOSTransition(err error) error {
	switch {
	case errors.Is(err, sos.ErrNotOpen):
		return errs.Mark(err, errs.ErrSOSNotOpen)
	case errors.Is(err, sos.ErrNotDispatched):
		return errs.Mark(err, errs.ErrSOSNotDispatched)
	case errors.Is(err, sos.ErrAlreadyDispatched):
		return errs.Mark(err, errs.ErrSOSAlreadyDispatched)
	case errors.Is(err, sos.ErrAlreadyTerminal):
		return errs.Mark(err, errs.ErrSOSTerminal)
	case errors.Is(err, sos.ErrEmptyIssue), errors.Is(err, sos.ErrReasonRequired):
		return errs.Mark(err, errs.ErrValidation)
	default:
		return errs.Mark(err, errs.ErrInvalidState)
	}
}

// publishSOSState pushes the ticket frame to the reporting rider's stream.
func (c *sosCommandsImpl) publishSOSState(req *sos.Request) {
	if req == nil {
		return
	}
	var agentID *string
	if a := req.AssignedAgentID(); a != nil {
		s := a.String()
		agentID = &s
	}
	c.publisher.Notify(req.UserID(), status.TypeSOSStatus, status.SOSStatusPayload{
		SOSID:    req.ID().String(),
		RentalID: req.RentalID().String(),
		Status:   req.Status().String(),
		AgentID:  agentID,
	})
}
