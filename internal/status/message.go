// Package status is the real-time fleet-state distribution layer: a
// per-recipient fan-out bus and a TTL-bounded backlog of undelivered messages.
// Writers (rental and SOS commands, bike-status changes) publish here; the SSE
// endpoint reads. Per-recipient ordering is an explicit contract: every
// message carries a sequence number stamped at publish time.
package status

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Frame types on the wire. Consumers must treat unknown types as
// forward-compatible no-ops.
const (
	TypeBikeStatus   = "bike_status"
	TypeRentalStatus = "rental_status"
	TypeSOSStatus    = "sos_status"
)

// Message is one fleet-state change addressed to a recipient. Immutable once
// published; Seq is assigned by the bus, monotonically per recipient.
type Message struct {
	RecipientID uuid.UUID       `json:"recipientId"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Seq         uint64          `json:"seq"`
	CreatedAt   time.Time       `json:"timestamp"`
}

// BikeStatusPayload is the payload body for TypeBikeStatus frames.
type BikeStatusPayload struct {
	BikeID string `json:"bikeId"`
	Status string `json:"status"`
}

// RentalStatusPayload is the payload body for TypeRentalStatus frames.
type RentalStatusPayload struct {
	RentalID        string  `json:"rentalId"`
	Status          string  `json:"status"`
	TotalPriceCents *int64  `json:"totalPriceCents,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

// SOSStatusPayload is the payload body for TypeSOSStatus frames.
type SOSStatusPayload struct {
	SOSID    string  `json:"sosId"`
	RentalID string  `json:"rentalId"`
	Status   string  `json:"status"`
	AgentID  *string `json:"agentId,omitempty"`
}
