package rental

import "time"

// PriceCalculator computes the charge for an elapsed rental duration.
// The production implementation may consult subscriptions or promotions; the
// default policy is a flat per-minute rate with an overdue penalty.
type PriceCalculator interface {
	CalculatePriceCents(ctx PriceContext, elapsed time.Duration) int64
}

type PriceContext struct {
	RentalID string
	UserID   string
}

type DefaultPriceCalculator struct {
	RatePerMinuteCents int64
	PenaltyAfter       time.Duration
	PenaltyCents       int64
}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{
		RatePerMinuteCents: 200,
		PenaltyAfter:       24 * time.Hour,
		PenaltyCents:       50000,
	}
}

func (pc *DefaultPriceCalculator) CalculatePriceCents(_ PriceContext, elapsed time.Duration) int64 {
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := int64(elapsed.Minutes())
	if elapsed > time.Duration(minutes)*time.Minute {
		minutes++ // started minutes are charged in full
	}
	total := minutes * pc.RatePerMinuteCents
	if pc.PenaltyAfter > 0 && elapsed > pc.PenaltyAfter {
		total += pc.PenaltyCents
	}
	return total
}
