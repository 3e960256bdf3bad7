package request

import (
	"time"

	"github.com/google/uuid"
)

type StartRentalRequest struct {
	BikeID uuid.UUID `json:"bike_id" binding:"required"`
}

type StartRentalByCardRequest struct {
	ChipID  string `json:"chip_id" binding:"required"`
	CardUID string `json:"card_uid" binding:"required"`
}

type ForceEndRentalRequest struct {
	StationEnd uuid.UUID  `json:"station_end" binding:"required"`
	Reason     string     `json:"reason" binding:"required"`
	EndTime    *time.Time `json:"end_time,omitempty"`
}

type CancelRentalRequest struct {
	Reason     string  `json:"reason" binding:"required"`
	BikeStatus *string `json:"bike_status,omitempty"`
}
