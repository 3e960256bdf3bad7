package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RentalView struct {
	ID                uuid.UUID  `json:"id"`
	BikeID            uuid.UUID  `json:"bike_id"`
	UserID            uuid.UUID  `json:"user_id"`
	StationStart      uuid.UUID  `json:"station_start"`
	StationEnd        *uuid.UUID `json:"station_end,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	EndedAt           *time.Time `json:"ended_at,omitempty"`
	Status            string     `json:"status"`
	TerminationReason *string    `json:"termination_reason,omitempty"`
	TotalPriceCents   *int64     `json:"total_price_cents,omitempty"`
}

type RentalListItem struct {
	ID        uuid.UUID `json:"id"`
	BikeID    uuid.UUID `json:"bike_id"`
	StartedAt time.Time `json:"started_at"`
	Status    string    `json:"status"`
}

type SOSView struct {
	ID              uuid.UUID  `json:"id"`
	RentalID        uuid.UUID  `json:"rental_id"`
	UserID          uuid.UUID  `json:"user_id"`
	BikeID          uuid.UUID  `json:"bike_id"`
	Issue           string     `json:"issue"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	Status          string     `json:"status"`
	AssignedAgentID *uuid.UUID `json:"assigned_agent_id,omitempty"`
	StaffNotes      *string    `json:"staff_notes,omitempty"`
	Solvable        *bool      `json:"solvable,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
