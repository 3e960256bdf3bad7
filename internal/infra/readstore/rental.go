// Package readstore serves the query side: flat row-to-view projections with
// no domain reconstruction, read outside any transaction.
package readstore

import (
	"context"
	"time"

	"bikefleet/internal/infra"
	"bikefleet/internal/infra/repository"
	"bikefleet/internal/pkg/pgconv"
	"bikefleet/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RentalReadStore struct {
	db repository.DBTX
}

func NewRentalReadStore(db repository.DBTX) *RentalReadStore {
	return &RentalReadStore{db: db}
}

func (r *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	var (
		view              queries.RentalView
		stationEnd        pgtype.UUID
		endedAt           pgtype.Timestamptz
		terminationReason pgtype.Text
		totalPriceCents   pgtype.Int8
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, bike_id, user_id, station_start, station_end, started_at, ended_at,
		       status, termination_reason, total_price_cents
		FROM rentals WHERE id = $1`, id,
	).Scan(
		&view.ID, &view.BikeID, &view.UserID, &view.StationStart, &stationEnd,
		&view.StartedAt, &endedAt, &view.Status, &terminationReason, &totalPriceCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental by ID", err)
	}

	view.StationEnd = pgconv.UUIDPtrFromPgtype(stationEnd)
	view.EndedAt = pgconv.TimePtrFromPgtype(endedAt)
	view.TerminationReason = pgconv.StringPtrFromPgtype(terminationReason)
	view.TotalPriceCents = pgconv.Int64PtrFromPgtype(totalPriceCents)
	return &view, nil
}

func (r *RentalReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]queries.RentalListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, bike_id, started_at, status
		FROM rentals WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT 100`, userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rentals", err)
	}
	defer rows.Close()

	items := make([]queries.RentalListItem, 0)
	for rows.Next() {
		var (
			item      queries.RentalListItem
			startedAt time.Time
		)
		if err := rows.Scan(&item.ID, &item.BikeID, &startedAt, &item.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental row", err)
		}
		item.StartedAt = startedAt
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rental rows", err)
	}
	return items, nil
}
