package request

import (
	"github.com/google/uuid"
)

type CreateSOSRequest struct {
	RentalID   uuid.UUID `json:"rental_id" binding:"required"`
	Issue      string    `json:"issue" binding:"required"`
	Latitude   float64   `json:"latitude" binding:"required"`
	Longitude  float64   `json:"longitude" binding:"required"`
	StaffNotes *string   `json:"staff_notes,omitempty"`
}

type DispatchSOSRequest struct {
	AgentID uuid.UUID `json:"agent_id" binding:"required"`
}

type ConfirmSOSRequest struct {
	Notes    *string `json:"notes,omitempty"`
	Solvable *bool   `json:"solvable" binding:"required"`
}

type RejectSOSRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelSOSRequest struct {
	Reason string `json:"reason" binding:"required"`
}
