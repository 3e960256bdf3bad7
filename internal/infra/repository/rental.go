package repository

import (
	"context"
	"time"

	"bikefleet/internal/domain/rental"
	"bikefleet/internal/infra"
	"bikefleet/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) *RentalRepository {
	return &RentalRepository{db: db}
}

const rentalColumns = `id, bike_id, user_id, station_start, station_end, started_at, ended_at, status, termination_reason, total_price_cents`

func (r *RentalRepository) Create(ctx context.Context, tx DBTX, res *rental.Rental) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO rentals (id, bike_id, user_id, station_start, started_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		res.ID(), res.BikeID(), res.UserID(), res.StationStart(), res.StartedAt(), res.Status().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("rental already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create rental", err)
	}
	return nil
}

// FindByIDForUpdate loads the rental under a row lock so concurrent
// transitions on the same rental serialize at the database.
func (r *RentalRepository) FindByIDForUpdate(ctx context.Context, tx DBTX, id uuid.UUID) (*rental.Rental, error) {
	return r.findByID(ctx, tx, id, true)
}

func (r *RentalRepository) findByID(ctx context.Context, db DBTX, id uuid.UUID, forUpdate bool) (*rental.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		rentalID, bikeID, userID, stationStart uuid.UUID
		stationEnd                             pgtype.UUID
		startedAt                              time.Time
		endedAt                                pgtype.Timestamptz
		statusStr                              string
		terminationReason                      pgtype.Text
		totalPriceCents                        pgtype.Int8
	)
	err := db.QueryRow(ctx, query, id).Scan(
		&rentalID, &bikeID, &userID, &stationStart, &stationEnd,
		&startedAt, &endedAt, &statusStr, &terminationReason, &totalPriceCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental by ID", err)
	}

	entity, err := rental.Reconstruct(
		rentalID, bikeID, userID, stationStart,
		pgconv.UUIDPtrFromPgtype(stationEnd),
		startedAt,
		pgconv.TimePtrFromPgtype(endedAt),
		rental.Status(statusStr),
		pgconv.StringPtrFromPgtype(terminationReason),
		pgconv.Int64PtrFromPgtype(totalPriceCents),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct rental", err)
	}
	return entity, nil
}

// FindReservedByUserAndBike returns the caller's RESERVED rental on the bike,
// locked for update, so a physical start can engage a materialized
// reservation instead of conflicting with it.
func (r *RentalRepository) FindReservedByUserAndBike(ctx context.Context, tx DBTX, userID, bikeID uuid.UUID) (*rental.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
		WHERE user_id = $1 AND bike_id = $2 AND status = 'reserved'
		ORDER BY started_at
		LIMIT 1
		FOR UPDATE`

	var (
		rentalID, rUserID, rBikeID, stationStart uuid.UUID
		stationEnd                               pgtype.UUID
		startedAt                                time.Time
		endedAt                                  pgtype.Timestamptz
		statusStr                                string
		terminationReason                        pgtype.Text
		totalPriceCents                          pgtype.Int8
	)
	err := tx.QueryRow(ctx, query, userID, bikeID).Scan(
		&rentalID, &rBikeID, &rUserID, &stationStart, &stationEnd,
		&startedAt, &endedAt, &statusStr, &terminationReason, &totalPriceCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reserved rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reserved rental", err)
	}

	entity, err := rental.Reconstruct(
		rentalID, rBikeID, rUserID, stationStart,
		pgconv.UUIDPtrFromPgtype(stationEnd),
		startedAt,
		pgconv.TimePtrFromPgtype(endedAt),
		rental.Status(statusStr),
		pgconv.StringPtrFromPgtype(terminationReason),
		pgconv.Int64PtrFromPgtype(totalPriceCents),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct rental", err)
	}
	return entity, nil
}

// Update persists a state transition. Only the mutable columns move; identity
// and start facts are immutable after creation.
func (r *RentalRepository) Update(ctx context.Context, tx DBTX, res *rental.Rental) error {
	tag, err := tx.Exec(ctx, `
		UPDATE rentals
		SET station_end = $2, started_at = $3, ended_at = $4, status = $5,
		    termination_reason = $6, total_price_cents = $7, updated_at = now()
		WHERE id = $1`,
		res.ID(),
		pgconv.UUIDPtrToPgtype(res.StationEnd()),
		res.StartedAt(),
		pgconv.TimePtrToPgtype(res.EndedAt()),
		res.Status().String(),
		pgconv.StringPtrToPgtype(res.TerminationReason()),
		pgconv.Int64PtrToPgtype(res.TotalPriceCents()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update rental", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	return nil
}
