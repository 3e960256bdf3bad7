package response

import (
	"time"

	"bikefleet/internal/domain/sos"
	"bikefleet/internal/usecase/queries"

	"github.com/google/uuid"
)

type SOSResponse struct {
	ID              uuid.UUID  `json:"id"`
	RentalID        uuid.UUID  `json:"rentalId"`
	UserID          uuid.UUID  `json:"userId"`
	BikeID          uuid.UUID  `json:"bikeId"`
	Issue           string     `json:"issue"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	Status          string     `json:"status"`
	AssignedAgentID *uuid.UUID `json:"assignedAgentId,omitempty"`
	StaffNotes      *string    `json:"staffNotes,omitempty"`
	Solvable        *bool      `json:"solvable,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromSOS(req *sos.Request) *SOSResponse {
	return &SOSResponse{
		ID:              req.ID(),
		RentalID:        req.RentalID(),
		UserID:          req.UserID(),
		BikeID:          req.BikeID(),
		Issue:           req.Issue(),
		Latitude:        req.Location().Latitude,
		Longitude:       req.Location().Longitude,
		Status:          req.Status().String(),
		AssignedAgentID: req.AssignedAgentID(),
		StaffNotes:      req.StaffNotes(),
		Solvable:        req.Solvable(),
		CreatedAt:       req.CreatedAt(),
		UpdatedAt:       req.UpdatedAt(),
	}
}

func FromSOSView(rm *queries.SOSView) *SOSResponse {
	return &SOSResponse{
		ID:              rm.ID,
		RentalID:        rm.RentalID,
		UserID:          rm.UserID,
		BikeID:          rm.BikeID,
		Issue:           rm.Issue,
		Latitude:        rm.Latitude,
		Longitude:       rm.Longitude,
		Status:          rm.Status,
		AssignedAgentID: rm.AssignedAgentID,
		StaffNotes:      rm.StaffNotes,
		Solvable:        rm.Solvable,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}
