package repository

import (
	"context"

	"bikefleet/internal/domain/slot"
	"bikefleet/internal/infra"
)

// FixedSlotRepository reads the standing daily reservation subscriptions.
type FixedSlotRepository struct {
	db DBTX
}

func NewFixedSlotRepository(db DBTX) *FixedSlotRepository {
	return &FixedSlotRepository{db: db}
}

func (r *FixedSlotRepository) ActiveSlots(ctx context.Context) ([]slot.FixedSlot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, bike_id, slot_hour FROM fixed_slots WHERE active ORDER BY slot_hour`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list fixed slots", err)
	}
	defer rows.Close()

	slots := make([]slot.FixedSlot, 0)
	for rows.Next() {
		var s slot.FixedSlot
		if err := rows.Scan(&s.UserID, &s.BikeID, &s.SlotHour); err != nil {
			return nil, infra.WrapRepoErr("failed to scan fixed slot", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate fixed slots", err)
	}
	return slots, nil
}
