//go:build unit

package status_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"bikefleet/internal/status"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func recvOne(t *testing.T, ch <-chan status.Message) status.Message {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "subscription channel closed unexpectedly")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return status.Message{}
	}
}

func TestBusPublish(t *testing.T) {
	t.Run("delivers to the recipient's subscriber", func(t *testing.T) {
		bus := status.NewBus(8, discardLogger())
		recipientID := uuid.New()
		sub := bus.Subscribe(recipientID)
		defer bus.Unsubscribe(sub)

		published := bus.Publish(recipientID, status.TypeBikeStatus, []byte(`{"bikeId":"b1"}`))

		got := recvOne(t, sub.C())
		assert.Equal(t, published.Seq, got.Seq)
		assert.Equal(t, status.TypeBikeStatus, got.Type)
		assert.Equal(t, recipientID, got.RecipientID)
	})

	t.Run("sequence is per recipient and monotonic", func(t *testing.T) {
		bus := status.NewBus(8, discardLogger())
		a, b := uuid.New(), uuid.New()

		m1 := bus.Publish(a, status.TypeBikeStatus, nil)
		m2 := bus.Publish(a, status.TypeRentalStatus, nil)
		m3 := bus.Publish(b, status.TypeBikeStatus, nil)

		assert.Equal(t, uint64(1), m1.Seq)
		assert.Equal(t, uint64(2), m2.Seq)
		assert.Equal(t, uint64(1), m3.Seq, "second recipient starts its own sequence")
	})

	t.Run("preserves publish order for one subscriber", func(t *testing.T) {
		bus := status.NewBus(16, discardLogger())
		recipientID := uuid.New()
		sub := bus.Subscribe(recipientID)
		defer bus.Unsubscribe(sub)

		for i := 0; i < 5; i++ {
			bus.Publish(recipientID, status.TypeRentalStatus, nil)
		}

		for want := uint64(1); want <= 5; want++ {
			assert.Equal(t, want, recvOne(t, sub.C()).Seq)
		}
	})

	t.Run("fans out to every subscriber of the recipient", func(t *testing.T) {
		bus := status.NewBus(8, discardLogger())
		recipientID := uuid.New()
		sub1 := bus.Subscribe(recipientID)
		sub2 := bus.Subscribe(recipientID)
		defer bus.Unsubscribe(sub1)
		defer bus.Unsubscribe(sub2)

		bus.Publish(recipientID, status.TypeSOSStatus, nil)

		assert.Equal(t, uint64(1), recvOne(t, sub1.C()).Seq)
		assert.Equal(t, uint64(1), recvOne(t, sub2.C()).Seq)
	})

	t.Run("does not leak across recipients", func(t *testing.T) {
		bus := status.NewBus(8, discardLogger())
		sub := bus.Subscribe(uuid.New())
		defer bus.Unsubscribe(sub)

		bus.Publish(uuid.New(), status.TypeBikeStatus, nil)

		select {
		case msg := <-sub.C():
			t.Fatalf("received message for another recipient: %+v", msg)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("never blocks on a full subscriber buffer", func(t *testing.T) {
		bus := status.NewBus(2, discardLogger())
		recipientID := uuid.New()
		sub := bus.Subscribe(recipientID)
		defer bus.Unsubscribe(sub)

		done := make(chan struct{})
		go func() {
			for i := 0; i < 10; i++ {
				bus.Publish(recipientID, status.TypeBikeStatus, nil)
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}

		// The two buffered messages are the oldest; overflow was dropped.
		assert.Equal(t, uint64(1), recvOne(t, sub.C()).Seq)
		assert.Equal(t, uint64(2), recvOne(t, sub.C()).Seq)
	})
}

func TestBusUnsubscribe(t *testing.T) {
	t.Run("closes the subscription channel", func(t *testing.T) {
		bus := status.NewBus(8, discardLogger())
		sub := bus.Subscribe(uuid.New())

		bus.Unsubscribe(sub)

		_, ok := <-sub.C()
		assert.False(t, ok)
	})

	t.Run("is idempotent", func(t *testing.T) {
		bus := status.NewBus(8, discardLogger())
		sub := bus.Subscribe(uuid.New())

		bus.Unsubscribe(sub)
		assert.NotPanics(t, func() { bus.Unsubscribe(sub) })
	})

	t.Run("stops delivery to the removed subscriber only", func(t *testing.T) {
		bus := status.NewBus(8, discardLogger())
		recipientID := uuid.New()
		gone := bus.Subscribe(recipientID)
		kept := bus.Subscribe(recipientID)
		defer bus.Unsubscribe(kept)

		bus.Unsubscribe(gone)
		bus.Publish(recipientID, status.TypeBikeStatus, nil)

		assert.Equal(t, uint64(1), recvOne(t, kept.C()).Seq)
	})
}
