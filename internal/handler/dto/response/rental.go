package response

import (
	"time"

	"bikefleet/internal/domain/rental"
	"bikefleet/internal/usecase/queries"

	"github.com/google/uuid"
)

type RentalResponse struct {
	ID                uuid.UUID  `json:"id"`
	BikeID            uuid.UUID  `json:"bikeId"`
	UserID            uuid.UUID  `json:"userId"`
	StationStart      uuid.UUID  `json:"stationStart"`
	StationEnd        *uuid.UUID `json:"stationEnd,omitempty"`
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           *time.Time `json:"endedAt,omitempty"`
	Status            string     `json:"status"`
	TerminationReason *string    `json:"terminationReason,omitempty"`
	TotalPriceCents   *int64     `json:"totalPriceCents,omitempty"`
}

type RentalListResponse struct {
	ID        uuid.UUID `json:"id"`
	BikeID    uuid.UUID `json:"bikeId"`
	StartedAt time.Time `json:"startedAt"`
	Status    string    `json:"status"`
}

func FromRental(r *rental.Rental) *RentalResponse {
	return &RentalResponse{
		ID:                r.ID(),
		BikeID:            r.BikeID(),
		UserID:            r.UserID(),
		StationStart:      r.StationStart(),
		StationEnd:        r.StationEnd(),
		StartedAt:         r.StartedAt(),
		EndedAt:           r.EndedAt(),
		Status:            r.Status().String(),
		TerminationReason: r.TerminationReason(),
		TotalPriceCents:   r.TotalPriceCents(),
	}
}

func FromRentalView(rm *queries.RentalView) *RentalResponse {
	return &RentalResponse{
		ID:                rm.ID,
		BikeID:            rm.BikeID,
		UserID:            rm.UserID,
		StationStart:      rm.StationStart,
		StationEnd:        rm.StationEnd,
		StartedAt:         rm.StartedAt,
		EndedAt:           rm.EndedAt,
		Status:            rm.Status,
		TerminationReason: rm.TerminationReason,
		TotalPriceCents:   rm.TotalPriceCents,
	}
}

func FromRentalListItem(rm *queries.RentalListItem) *RentalListResponse {
	return &RentalListResponse{
		ID:        rm.ID,
		BikeID:    rm.BikeID,
		StartedAt: rm.StartedAt,
		Status:    rm.Status,
	}
}
