package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers.
// The four categories mirror how handlers map failures: validation (4xx,
// caller's fault), invalid state (operation illegal right now), conflict
// (lost a concurrent race), not found (referenced aggregate absent).
var (
	// Category sentinels
	ErrValidation   = errors.New("validation error")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")

	// Rental errors
	ErrRentalNotFound      = errors.New("rental not found")
	ErrRentalNotActive     = errors.New("rental not active")
	ErrRentalNotReserved   = errors.New("rental not reserved")
	ErrRentalNotOwned      = errors.New("rental belongs to another user")
	ErrBikeNotFound        = errors.New("bike not found")
	ErrBikeNotAvailable    = errors.New("bike not available")
	ErrReasonRequired      = errors.New("termination reason required")
	ErrEndTimeInFuture     = errors.New("end time cannot be in the future")
	ErrEndTimeBeforeStart  = errors.New("end time must be after start time")

	// SOS errors
	ErrSOSNotFound          = errors.New("sos request not found")
	ErrSOSNotOpen           = errors.New("sos request not open")
	ErrSOSNotDispatched     = errors.New("sos request not dispatched")
	ErrSOSAlreadyDispatched = errors.New("sos request already dispatched")
	ErrSOSTerminal          = errors.New("sos request already closed")
	ErrAgentNotFound        = errors.New("sos agent not found")

	// Job queue errors
	ErrDuplicateJob = errors.New("duplicate job for dedupe key")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
