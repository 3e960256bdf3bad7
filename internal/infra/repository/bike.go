package repository

import (
	"context"

	"bikefleet/internal/domain/bike"
	"bikefleet/internal/infra"
	"bikefleet/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BikeRepository struct {
	db DBTX
}

func NewBikeRepository(db DBTX) *BikeRepository {
	return &BikeRepository{db: db}
}

const bikeColumns = `id, station_id, supplier_id, chip_id, status`

func (r *BikeRepository) FindByID(ctx context.Context, id uuid.UUID) (*bike.Bike, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bikeColumns+` FROM bikes WHERE id = $1`, id)
	return scanBike(row, "bike not found")
}

// FindByChip resolves the bike for card-based starts, keyed by the IoT chip
// mounted on the frame.
func (r *BikeRepository) FindByChip(ctx context.Context, chipID string) (*bike.Bike, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bikeColumns+` FROM bikes WHERE chip_id = $1`, chipID)
	return scanBike(row, "bike not found for chip")
}

// CompareAndSetStatus transitions the bike only when it is still in the
// expected state. Zero rows affected means a competing transition won the
// race; the caller maps that to a conflict.
func (r *BikeRepository) CompareAndSetStatus(ctx context.Context, tx DBTX, id uuid.UUID, from, to bike.Status) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bikes SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update bike status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("bike status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

// SetStatus force-sets the bike's status, used when releasing a bike at the
// end of a rental or for staff maintenance overrides.
func (r *BikeRepository) SetStatus(ctx context.Context, tx DBTX, id uuid.UUID, to bike.Status) error {
	tag, err := tx.Exec(ctx, `UPDATE bikes SET status = $2, updated_at = now() WHERE id = $1`, id, to.String())
	if err != nil {
		return infra.WrapRepoErr("failed to set bike status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("bike not found", nil, infra.KindNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBike(row rowScanner, notFoundMsg string) (*bike.Bike, error) {
	var (
		id         uuid.UUID
		stationID  pgtype.UUID
		supplierID pgtype.UUID
		chipID     pgtype.Text
		statusStr  string
	)
	if err := row.Scan(&id, &stationID, &supplierID, &chipID, &statusStr); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan bike", err)
	}

	entity, err := bike.Reconstruct(
		id,
		pgconv.UUIDPtrFromPgtype(stationID),
		pgconv.UUIDPtrFromPgtype(supplierID),
		pgconv.StringPtrFromPgtype(chipID),
		bike.Status(statusStr),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct bike", err)
	}
	return entity, nil
}
