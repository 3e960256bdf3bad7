// Package slot models fixed-slot subscriptions: a standing daily hold on a
// specific bike, materialized into RESERVED rentals by the scheduler.
package slot

import "github.com/google/uuid"

type FixedSlot struct {
	UserID   uuid.UUID
	BikeID   uuid.UUID
	SlotHour int
}
