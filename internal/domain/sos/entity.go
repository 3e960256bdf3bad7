package sos

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotOpen           = errors.New("sos request is not open")
	ErrNotDispatched     = errors.New("sos request is not dispatched")
	ErrAlreadyDispatched = errors.New("sos request already dispatched")
	ErrAlreadyTerminal   = errors.New("sos request already closed")
	ErrEmptyIssue        = errors.New("issue description required")
	ErrReasonRequired    = errors.New("cancellation reason required")
	ErrInvalidStatus     = errors.New("invalid sos status")
)

// Request is an emergency-assistance ticket raised during an active rental.
// userID and bikeID are copied from the rental at creation time; later rental
// mutation does not touch the ticket.
type Request struct {
	id              uuid.UUID
	rentalID        uuid.UUID
	userID          uuid.UUID
	bikeID          uuid.UUID
	issue           string
	location        Location
	status          Status
	assignedAgentID *uuid.UUID
	staffNotes      *string
	solvable        *bool
	createdAt       time.Time
	updatedAt       time.Time
}

// New opens a ticket snapshotting the rental's rider and bike. The caller has
// already verified the rental is ACTIVE.
func New(rentalID, userID, bikeID uuid.UUID, issue string, loc Location, staffNotes *string, now time.Time) (*Request, error) {
	if issue == "" {
		return nil, ErrEmptyIssue
	}
	return &Request{
		id:         uuid.New(),
		rentalID:   rentalID,
		userID:     userID,
		bikeID:     bikeID,
		issue:      issue,
		location:   loc,
		status:     StatusOpen,
		staffNotes: staffNotes,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id, rentalID, userID, bikeID uuid.UUID,
	issue string,
	loc Location,
	status Status,
	assignedAgentID *uuid.UUID,
	staffNotes *string,
	solvable *bool,
	createdAt, updatedAt time.Time,
) (*Request, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Request{
		id:              id,
		rentalID:        rentalID,
		userID:          userID,
		bikeID:          bikeID,
		issue:           issue,
		location:        loc,
		status:          status,
		assignedAgentID: assignedAgentID,
		staffNotes:      staffNotes,
		solvable:        solvable,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// Dispatch assigns an agent. Legal only from OPEN; re-dispatching to a
// different agent is a conflict, re-dispatching to the same agent a no-op.
func (r *Request) Dispatch(agentID uuid.UUID, now time.Time) error {
	switch r.status {
	case StatusOpen:
	case StatusDispatched:
		if r.assignedAgentID != nil && *r.assignedAgentID == agentID {
			return nil
		}
		return ErrAlreadyDispatched
	default:
		return ErrAlreadyTerminal
	}
	r.status = StatusDispatched
	r.assignedAgentID = &agentID
	r.updatedAt = now
	return nil
}

// Confirm resolves a dispatched ticket. solvable=false means the bike could
// not be recovered in the field, which the caller translates into force-ending
// the rental and flagging the bike broken.
func (r *Request) Confirm(notes *string, solvable bool, now time.Time) error {
	if r.status != StatusDispatched {
		return ErrNotDispatched
	}
	r.status = StatusResolved
	if notes != nil {
		r.staffNotes = notes
	}
	s := solvable
	r.solvable = &s
	r.updatedAt = now
	return nil
}

// Reject closes the ticket from OPEN or DISPATCHED without touching the rental.
func (r *Request) Reject(reason string, now time.Time) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if r.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	r.status = StatusCancelled
	r.staffNotes = &reason
	r.updatedAt = now
	return nil
}

// CancelByReporter withdraws the ticket. Only legal while OPEN: once an agent
// is on the way the reporter can no longer cancel.
func (r *Request) CancelByReporter(reason string, now time.Time) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if r.status != StatusOpen {
		if r.status.IsTerminal() {
			return ErrAlreadyTerminal
		}
		return ErrAlreadyDispatched
	}
	r.status = StatusCancelled
	r.staffNotes = &reason
	r.updatedAt = now
	return nil
}

func (r *Request) ID() uuid.UUID               { return r.id }
func (r *Request) RentalID() uuid.UUID         { return r.rentalID }
func (r *Request) UserID() uuid.UUID           { return r.userID }
func (r *Request) BikeID() uuid.UUID           { return r.bikeID }
func (r *Request) Issue() string               { return r.issue }
func (r *Request) Location() Location          { return r.location }
func (r *Request) Status() Status              { return r.status }
func (r *Request) AssignedAgentID() *uuid.UUID { return r.assignedAgentID }
func (r *Request) StaffNotes() *string         { return r.staffNotes }
func (r *Request) Solvable() *bool             { return r.solvable }
func (r *Request) CreatedAt() time.Time        { return r.createdAt }
func (r *Request) UpdatedAt() time.Time        { return r.updatedAt }
