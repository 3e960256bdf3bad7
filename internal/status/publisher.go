package status

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
)

// Publisher is the write-side facade the command layer uses: one call routes a
// status change onto the bus (for live connections) and into the backlog (for
// recipients that reconnect within the TTL). Serialization failures are
// absorbed with a log line; a status update must never fail the state
// transition that produced it.
type Publisher struct {
	bus     Bus
	backlog *Backlog
	logger  *slog.Logger
}

func NewPublisher(bus Bus, backlog *Backlog, logger *slog.Logger) *Publisher {
	return &Publisher{bus: bus, backlog: backlog, logger: logger}
}

func (p *Publisher) Notify(recipientID uuid.UUID, msgType string, payload any) {
	if recipientID == uuid.Nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal status payload",
			"recipient_id", recipientID, "type", msgType, "error", err)
		return
	}
	msg := p.bus.Publish(recipientID, msgType, body)
	p.backlog.Enqueue(msg)
}

// NotifyBikeStatus publishes a bike status change to the given recipient.
func (p *Publisher) NotifyBikeStatus(recipientID, bikeID uuid.UUID, bikeStatus string) {
	p.Notify(recipientID, TypeBikeStatus, BikeStatusPayload{
		BikeID: bikeID.String(),
		Status: bikeStatus,
	})
}
