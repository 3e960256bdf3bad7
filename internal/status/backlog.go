package status

import (
	"sync"
	"time"

	"bikefleet/internal/pkg/clock"

	"github.com/google/uuid"
)

// DefaultBacklogTTL is how long an undelivered message survives a disconnect.
// Clients that reconnect later than this must re-sync by full state fetch.
const DefaultBacklogTTL = 30 * time.Second

// BacklogStore is the keyed store behind the backlog. The in-process map
// backing serves single-instance deployments; a shared keyed store can be
// plugged in when backlogs must survive across instances.
type BacklogStore interface {
	Append(recipientID uuid.UUID, e Entry)
	// Take removes and returns the whole queue for the recipient, expired
	// entries included. Filtering is the Backlog's concern.
	Take(recipientID uuid.UUID) []Entry
}

// Entry is one undelivered message with its expiry. Owned exclusively by the
// backlog; created on enqueue, destroyed on drain or eviction.
type Entry struct {
	Message   Message
	ExpiresAt time.Time
}

// Backlog buffers messages for recipients with no live stream connection so a
// reconnect within the TTL replays them. Drain is destructive and one-shot:
// it models replay-once-on-reconnect, not a durable log.
type Backlog struct {
	store BacklogStore
	ttl   time.Duration
	clock clock.Clock
}

func NewBacklog(store BacklogStore, ttl time.Duration, clk clock.Clock) *Backlog {
	if ttl <= 0 {
		ttl = DefaultBacklogTTL
	}
	return &Backlog{store: store, ttl: ttl, clock: clk}
}

// Enqueue appends a message to the recipient's queue. A zero recipient is a
// no-op, not an error: some status changes have no addressable recipient.
func (b *Backlog) Enqueue(msg Message) {
	if msg.RecipientID == uuid.Nil {
		return
	}
	b.store.Append(msg.RecipientID, Entry{
		Message:   msg,
		ExpiresAt: b.clock.Now().Add(b.ttl),
	})
}

// Drain removes the recipient's entire queue and returns the entries that are
// still live, in enqueue order. Expired entries are discarded silently. An
// immediate second drain returns nothing.
func (b *Backlog) Drain(recipientID uuid.UUID) []Message {
	if recipientID == uuid.Nil {
		return nil
	}
	entries := b.store.Take(recipientID)
	if len(entries) == 0 {
		return nil
	}
	now := b.clock.Now()
	msgs := make([]Message, 0, len(entries))
	for _, e := range entries {
		if e.ExpiresAt.After(now) {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// TTL reports the configured retention window.
func (b *Backlog) TTL() time.Duration {
	return b.ttl
}

type memoryBacklogStore struct {
	mu     sync.Mutex
	queues map[uuid.UUID][]Entry
	cap    int
}

// NewMemoryBacklogStore returns the in-process BacklogStore. Each recipient
// queue is capped; beyond the cap the oldest entries are evicted first, since
// an unbounded queue for a recipient that never reconnects is a leak.
func NewMemoryBacklogStore(queueCap int) BacklogStore {
	if queueCap <= 0 {
		queueCap = 256
	}
	return &memoryBacklogStore{
		queues: make(map[uuid.UUID][]Entry),
		cap:    queueCap,
	}
}

func (s *memoryBacklogStore) Append(recipientID uuid.UUID, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := append(s.queues[recipientID], e)
	if len(q) > s.cap {
		q = q[len(q)-s.cap:]
	}
	s.queues[recipientID] = q
}

func (s *memoryBacklogStore) Take(recipientID uuid.UUID) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queues[recipientID]
	delete(s.queues, recipientID)
	return q
}
