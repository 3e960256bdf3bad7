//go:build unit

package rental_test

import (
	"testing"
	"time"

	"bikefleet/internal/domain/rental"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPriceCalculator(t *testing.T) {
	pc := rental.NewDefaultPriceCalculator()
	ctx := rental.PriceContext{}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int64
	}{
		{"zero duration", 0, 0},
		{"negative duration clamps to zero", -time.Minute, 0},
		{"exact minute", time.Minute, 200},
		{"started minute charged in full", 61 * time.Second, 400},
		{"one hour", time.Hour, 12000},
		{"just under the penalty threshold", 24 * time.Hour, 24 * 60 * 200},
		{"overdue adds the penalty", 24*time.Hour + time.Second, 24*60*200 + 200 + 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pc.CalculatePriceCents(ctx, tt.elapsed))
		})
	}
}

func TestPriceCalculatorCustomRate(t *testing.T) {
	pc := &rental.DefaultPriceCalculator{
		RatePerMinuteCents: 100,
		PenaltyAfter:       time.Hour,
		PenaltyCents:       1000,
	}

	assert.Equal(t, int64(3000), pc.CalculatePriceCents(rental.PriceContext{}, 30*time.Minute))
	assert.Equal(t, int64(61*100+1000), pc.CalculatePriceCents(rental.PriceContext{}, 61*time.Minute))
}
