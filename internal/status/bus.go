package status

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Bus fans one published message out to every current subscriber of the
// recipient. Publish never blocks the caller: a subscriber that cannot keep up
// has the message dropped on its channel (the backlog, fed by the caller, is
// the durability fallback). Subscribers registered for the same recipient each
// receive every message published after their subscription began.
type Bus interface {
	Publish(recipientID uuid.UUID, msgType string, payload []byte) Message
	Subscribe(recipientID uuid.UUID) *Subscription
	Unsubscribe(sub *Subscription)
}

// Subscription is a live feed of messages for one recipient. C is closed on
// Unsubscribe; receivers must tolerate that.
type Subscription struct {
	recipientID uuid.UUID
	id          uint64
	ch          chan Message

	closeOnce sync.Once
}

func (s *Subscription) C() <-chan Message {
	return s.ch
}

func (s *Subscription) RecipientID() uuid.UUID {
	return s.recipientID
}

type memoryBus struct {
	mu      sync.Mutex
	subs    map[uuid.UUID]map[uint64]*Subscription
	seqs    map[uuid.UUID]uint64
	nextSub uint64
	buffer  int
	logger  *slog.Logger
}

// NewBus returns the in-process Bus backing for single-instance deployments.
// buffer is the per-subscriber channel capacity; beyond it messages are
// dropped for that subscriber rather than stalling the publisher.
func NewBus(buffer int, logger *slog.Logger) Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &memoryBus{
		subs:   make(map[uuid.UUID]map[uint64]*Subscription),
		seqs:   make(map[uuid.UUID]uint64),
		buffer: buffer,
		logger: logger,
	}
}

func (b *memoryBus) Publish(recipientID uuid.UUID, msgType string, payload []byte) Message {
	b.mu.Lock()
	b.seqs[recipientID]++
	msg := Message{
		RecipientID: recipientID,
		Type:        msgType,
		Payload:     payload,
		Seq:         b.seqs[recipientID],
		CreatedAt:   time.Now(),
	}
	// Fan out under the lock so two concurrent publishes cannot interleave
	// their channel sends and break per-recipient FIFO.
	for _, sub := range b.subs[recipientID] {
		select {
		case sub.ch <- msg:
		default:
			b.logger.Warn("status bus dropped message for slow subscriber",
				"recipient_id", recipientID, "type", msgType, "seq", msg.Seq)
		}
	}
	b.mu.Unlock()
	return msg
}

func (b *memoryBus) Subscribe(recipientID uuid.UUID) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSub++
	sub := &Subscription{
		recipientID: recipientID,
		id:          b.nextSub,
		ch:          make(chan Message, b.buffer),
	}
	if b.subs[recipientID] == nil {
		b.subs[recipientID] = make(map[uint64]*Subscription)
	}
	b.subs[recipientID][sub.id] = sub
	return sub
}

func (b *memoryBus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	if m := b.subs[sub.recipientID]; m != nil {
		delete(m, sub.id)
		if len(m) == 0 {
			delete(b.subs, sub.recipientID)
		}
	}
	b.mu.Unlock()
	sub.closeOnce.Do(func() { close(sub.ch) })
}
