//go:build unit

package rental_test

import (
	"testing"
	"time"

	"bikefleet/internal/domain/bike"
	"bikefleet/internal/domain/rental"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newActive(t *testing.T) *rental.Rental {
	t.Helper()
	return rental.NewActive(uuid.New(), uuid.New(), uuid.New(), baseTime)
}

func newReserved(t *testing.T) *rental.Rental {
	t.Helper()
	return rental.NewReserved(uuid.New(), uuid.New(), uuid.New(), baseTime)
}

func TestRentalCreation(t *testing.T) {
	t.Run("active rental starts engaged", func(t *testing.T) {
		r := newActive(t)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, rental.StatusActive, r.Status())
		assert.Equal(t, baseTime, r.StartedAt())
		assert.True(t, r.IsActive())
		assert.False(t, r.IsTerminal())
		assert.Nil(t, r.EndedAt())
		assert.Nil(t, r.TotalPriceCents())
	})

	t.Run("reserved rental awaits engagement", func(t *testing.T) {
		r := newReserved(t)

		assert.Equal(t, rental.StatusReserved, r.Status())
		assert.False(t, r.IsActive())
		assert.False(t, r.IsTerminal())
	})

	t.Run("reconstruct rejects unknown status", func(t *testing.T) {
		_, err := rental.Reconstruct(
			uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			nil, baseTime, nil, rental.Status("parked"), nil, nil,
		)
		assert.ErrorIs(t, err, rental.ErrInvalidStatus)
	})
}

func TestRentalActivate(t *testing.T) {
	t.Run("engages a reserved rental", func(t *testing.T) {
		r := newReserved(t)
		engagedAt := baseTime.Add(2 * time.Hour)

		require.NoError(t, r.Activate(engagedAt))

		assert.Equal(t, rental.StatusActive, r.Status())
		assert.Equal(t, engagedAt, r.StartedAt())
	})

	t.Run("rejects non-reserved rentals", func(t *testing.T) {
		r := newActive(t)
		assert.ErrorIs(t, r.Activate(baseTime), rental.ErrNotReserved)
	})
}

func TestRentalEnd(t *testing.T) {
	endStation := uuid.New()

	t.Run("closes an active rental", func(t *testing.T) {
		r := newActive(t)
		endTime := baseTime.Add(45 * time.Minute)
		reason := "staff intervention"

		require.NoError(t, r.End(endStation, endTime, 9000, &reason))

		assert.Equal(t, rental.StatusEnded, r.Status())
		assert.True(t, r.IsTerminal())
		require.NotNil(t, r.StationEnd())
		assert.Equal(t, endStation, *r.StationEnd())
		require.NotNil(t, r.EndedAt())
		assert.Equal(t, endTime, *r.EndedAt())
		require.NotNil(t, r.TotalPriceCents())
		assert.Equal(t, int64(9000), *r.TotalPriceCents())
		require.NotNil(t, r.TerminationReason())
		assert.Equal(t, reason, *r.TerminationReason())
	})

	t.Run("user initiated end carries no reason", func(t *testing.T) {
		r := newActive(t)

		require.NoError(t, r.End(endStation, baseTime.Add(time.Minute), 200, nil))
		assert.Nil(t, r.TerminationReason())
	})

	t.Run("rejects end before start", func(t *testing.T) {
		r := newActive(t)
		err := r.End(endStation, baseTime.Add(-time.Minute), 0, nil)
		assert.ErrorIs(t, err, rental.ErrEndBeforeStart)
	})

	t.Run("rejects reserved rentals", func(t *testing.T) {
		r := newReserved(t)
		err := r.End(endStation, baseTime.Add(time.Minute), 0, nil)
		assert.ErrorIs(t, err, rental.ErrNotActive)
	})

	t.Run("rejects a second end", func(t *testing.T) {
		r := newActive(t)
		require.NoError(t, r.End(endStation, baseTime.Add(time.Minute), 200, nil))
		err := r.End(endStation, baseTime.Add(2*time.Minute), 400, nil)
		assert.ErrorIs(t, err, rental.ErrNotActive)
	})
}

func TestRentalCancel(t *testing.T) {
	cancelledAt := baseTime.Add(30 * time.Minute)

	t.Run("aborts a reserved rental", func(t *testing.T) {
		r := newReserved(t)

		require.NoError(t, r.Cancel("no show", cancelledAt, bike.StatusAvailable))

		assert.Equal(t, rental.StatusCancelled, r.Status())
		assert.True(t, r.IsTerminal())
		require.NotNil(t, r.EndedAt())
		assert.Equal(t, cancelledAt, *r.EndedAt())
		require.NotNil(t, r.TerminationReason())
		assert.Equal(t, "no show", *r.TerminationReason())
		assert.Nil(t, r.TotalPriceCents())
	})

	t.Run("may ground the bike for maintenance", func(t *testing.T) {
		r := newReserved(t)
		assert.NoError(t, r.Cancel("flat tire found", cancelledAt, bike.StatusMaintenance))
	})

	t.Run("requires a reason", func(t *testing.T) {
		r := newReserved(t)
		err := r.Cancel("", cancelledAt, bike.StatusAvailable)
		assert.ErrorIs(t, err, rental.ErrReasonRequired)
	})

	t.Run("rejects rented as resulting bike status", func(t *testing.T) {
		r := newReserved(t)
		err := r.Cancel("no show", cancelledAt, bike.StatusRented)
		assert.ErrorIs(t, err, rental.ErrInvalidBikeStatus)
	})

	t.Run("rejects active rentals", func(t *testing.T) {
		r := newActive(t)
		err := r.Cancel("no show", cancelledAt, bike.StatusAvailable)
		assert.ErrorIs(t, err, rental.ErrNotReserved)
	})
}

func TestSOSReason(t *testing.T) {
	sosID := uuid.New()
	assert.Equal(t, "sos:"+sosID.String(), rental.SOSReason(sosID))
}

func TestRentalOwnership(t *testing.T) {
	userID := uuid.New()
	r := rental.NewActive(uuid.New(), userID, uuid.New(), baseTime)

	assert.True(t, r.OwnedBy(userID))
	assert.False(t, r.OwnedBy(uuid.New()))
}
