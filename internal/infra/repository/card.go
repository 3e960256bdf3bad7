package repository

import (
	"context"

	"bikefleet/internal/infra"
	"bikefleet/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// CardRepository resolves tap-card UIDs to rider identities for card-based
// rental starts at station terminals.
type CardRepository struct {
	db DBTX
}

func NewCardRepository(db DBTX) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) FindUserByCardUID(ctx context.Context, cardUID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT user_id FROM rider_cards WHERE card_uid = $1`, cardUID).Scan(&userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("card not registered", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to look up card", err)
	}
	return userID, nil
}
