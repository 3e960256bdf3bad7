package status

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const natsSubjectPrefix = "status."

// natsBus is the Bus backing for horizontally scaled deployments: messages
// published on one instance reach subscribers attached to another. Sequence
// numbers are stamped per publishing instance; NATS preserves per-publisher
// ordering on a subject, which keeps the per-recipient FIFO contract for any
// single writer of a recipient's updates.
type natsBus struct {
	conn   *nats.Conn
	buffer int
	logger *slog.Logger

	mu   sync.Mutex
	seqs map[uuid.UUID]uint64
	subs map[uint64]*nats.Subscription
	next uint64
}

func NewNATSBus(url string, buffer int, logger *slog.Logger) (Bus, func(), error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, nil, err
	}
	if buffer <= 0 {
		buffer = 64
	}
	b := &natsBus{
		conn:   conn,
		buffer: buffer,
		logger: logger,
		seqs:   make(map[uuid.UUID]uint64),
		subs:   make(map[uint64]*nats.Subscription),
	}
	cleanup := func() {
		if err := conn.Drain(); err != nil {
			logger.Warn("nats drain failed", "error", err)
		}
	}
	return b, cleanup, nil
}

func (b *natsBus) Publish(recipientID uuid.UUID, msgType string, payload []byte) Message {
	b.mu.Lock()
	b.seqs[recipientID]++
	msg := Message{
		RecipientID: recipientID,
		Type:        msgType,
		Payload:     payload,
		Seq:         b.seqs[recipientID],
		CreatedAt:   time.Now(),
	}
	b.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("failed to marshal status message", "recipient_id", recipientID, "error", err)
		return msg
	}
	// Publish failures are absorbed: the caller's backlog enqueue is the
	// durability fallback for undelivered updates.
	if err := b.conn.Publish(natsSubjectPrefix+recipientID.String(), data); err != nil {
		b.logger.Error("failed to publish status message", "recipient_id", recipientID, "error", err)
	}
	return msg
}

func (b *natsBus) Subscribe(recipientID uuid.UUID) *Subscription {
	b.mu.Lock()
	b.next++
	sub := &Subscription{
		recipientID: recipientID,
		id:          b.next,
		ch:          make(chan Message, b.buffer),
	}
	b.mu.Unlock()

	natsSub, err := b.conn.Subscribe(natsSubjectPrefix+recipientID.String(), func(m *nats.Msg) {
		var msg Message
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			b.logger.Warn("discarding malformed status message", "recipient_id", recipientID, "error", err)
			return
		}
		select {
		case sub.ch <- msg:
		default:
			b.logger.Warn("status bus dropped message for slow subscriber",
				"recipient_id", recipientID, "seq", msg.Seq)
		}
	})
	if err != nil {
		b.logger.Error("nats subscribe failed", "recipient_id", recipientID, "error", err)
		sub.closeOnce.Do(func() { close(sub.ch) })
		return sub
	}

	b.mu.Lock()
	b.subs[sub.id] = natsSub
	b.mu.Unlock()
	return sub
}

func (b *natsBus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	natsSub := b.subs[sub.id]
	delete(b.subs, sub.id)
	b.mu.Unlock()

	if natsSub != nil {
		if err := natsSub.Unsubscribe(); err != nil {
			b.logger.Warn("nats unsubscribe failed", "recipient_id", sub.recipientID, "error", err)
		}
	}
	sub.closeOnce.Do(func() { close(sub.ch) })
}
