//go:build unit

package status_test

import (
	"encoding/json"
	"testing"
	"time"

	"bikefleet/internal/pkg/clock"
	"bikefleet/internal/status"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublisher() (*status.Publisher, status.Bus, *status.Backlog) {
	bus := status.NewBus(8, discardLogger())
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	backlog := status.NewBacklog(status.NewMemoryBacklogStore(16), 30*time.Second, clk)
	return status.NewPublisher(bus, backlog, discardLogger()), bus, backlog
}

func TestPublisherNotify(t *testing.T) {
	t.Run("routes one frame to the live stream and the backlog", func(t *testing.T) {
		pub, bus, backlog := newPublisher()
		recipient := uuid.New()
		sub := bus.Subscribe(recipient)
		defer bus.Unsubscribe(sub)

		pub.Notify(recipient, status.TypeRentalStatus, status.RentalStatusPayload{
			RentalID: uuid.New().String(),
			Status:   "active",
		})

		live := recvOne(t, sub.C())
		assert.Equal(t, status.TypeRentalStatus, live.Type)
		assert.Equal(t, uint64(1), live.Seq)

		queued := backlog.Drain(recipient)
		require.Len(t, queued, 1)
		assert.Equal(t, live.Seq, queued[0].Seq, "live and queued copies share a sequence number")
	})

	t.Run("a nil recipient is dropped", func(t *testing.T) {
		pub, _, backlog := newPublisher()
		pub.Notify(uuid.Nil, status.TypeRentalStatus, status.RentalStatusPayload{})
		assert.Empty(t, backlog.Drain(uuid.Nil))
	})

	t.Run("an unserializable payload is absorbed", func(t *testing.T) {
		pub, _, backlog := newPublisher()
		recipient := uuid.New()
		pub.Notify(recipient, status.TypeRentalStatus, func() {})
		assert.Empty(t, backlog.Drain(recipient))
	})
}

func TestPublisherNotifyBikeStatus(t *testing.T) {
	t.Run("publishes a bike frame with the expected payload", func(t *testing.T) {
		pub, bus, _ := newPublisher()
		recipient := uuid.New()
		bikeID := uuid.New()
		sub := bus.Subscribe(recipient)
		defer bus.Unsubscribe(sub)

		pub.NotifyBikeStatus(recipient, bikeID, "available")

		msg := recvOne(t, sub.C())
		assert.Equal(t, status.TypeBikeStatus, msg.Type)

		var payload status.BikeStatusPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, bikeID.String(), payload.BikeID)
		assert.Equal(t, "available", payload.Status)
	})
}
