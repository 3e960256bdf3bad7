package bike

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid bike status")
)

// Bike is owned by fleet inventory; this core co-mutates only its status for
// the rented/available transition pair and the staff maintenance overrides.
type Bike struct {
	id         uuid.UUID
	stationID  *uuid.UUID
	supplierID *uuid.UUID
	chipID     *string
	status     Status
}

func Reconstruct(id uuid.UUID, stationID, supplierID *uuid.UUID, chipID *string, status Status) (*Bike, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Bike{
		id:         id,
		stationID:  stationID,
		supplierID: supplierID,
		chipID:     chipID,
		status:     status,
	}, nil
}

func (b *Bike) ID() uuid.UUID          { return b.id }
func (b *Bike) StationID() *uuid.UUID  { return b.stationID }
func (b *Bike) SupplierID() *uuid.UUID { return b.supplierID }
func (b *Bike) ChipID() *string        { return b.chipID }
func (b *Bike) Status() Status         { return b.status }

func (b *Bike) Rentable() bool {
	return b.status.Rentable()
}
