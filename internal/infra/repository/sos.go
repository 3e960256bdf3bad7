package repository

import (
	"context"
	"time"

	"bikefleet/internal/domain/sos"
	"bikefleet/internal/infra"
	"bikefleet/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SOSRepository struct {
	db DBTX
}

func NewSOSRepository(db DBTX) *SOSRepository {
	return &SOSRepository{db: db}
}

const sosColumns = `id, rental_id, user_id, bike_id, issue, latitude, longitude, status, assigned_agent_id, staff_notes, solvable, created_at, updated_at`

func (r *SOSRepository) Create(ctx context.Context, tx DBTX, req *sos.Request) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO sos_requests (id, rental_id, user_id, bike_id, issue, latitude, longitude, status, staff_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.ID(), req.RentalID(), req.UserID(), req.BikeID(),
		req.Issue(), req.Location().Latitude, req.Location().Longitude,
		req.Status().String(), pgconv.StringPtrToPgtype(req.StaffNotes()),
		req.CreatedAt(), req.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create sos request", err)
	}
	return nil
}

func (r *SOSRepository) FindByIDForUpdate(ctx context.Context, tx DBTX, id uuid.UUID) (*sos.Request, error) {
	return r.findByID(ctx, tx, id, true)
}

func (r *SOSRepository) findByID(ctx context.Context, db DBTX, id uuid.UUID, forUpdate bool) (*sos.Request, error) {
	query := `SELECT ` + sosColumns + ` FROM sos_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		sosID, rentalID, userID, bikeID uuid.UUID
		issue                           string
		latitude, longitude             float64
		statusStr                       string
		assignedAgentID                 pgtype.UUID
		staffNotes                      pgtype.Text
		solvable                        pgtype.Bool
		createdAt, updatedAt            time.Time
	)
	err := db.QueryRow(ctx, query, id).Scan(
		&sosID, &rentalID, &userID, &bikeID, &issue, &latitude, &longitude,
		&statusStr, &assignedAgentID, &staffNotes, &solvable, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sos request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sos request by ID", err)
	}

	var solvablePtr *bool
	if solvable.Valid {
		v := solvable.Bool
		solvablePtr = &v
	}

	entity, err := sos.Reconstruct(
		sosID, rentalID, userID, bikeID, issue,
		sos.Location{Latitude: latitude, Longitude: longitude},
		sos.Status(statusStr),
		pgconv.UUIDPtrFromPgtype(assignedAgentID),
		pgconv.StringPtrFromPgtype(staffNotes),
		solvablePtr,
		createdAt, updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct sos request", err)
	}
	return entity, nil
}

func (r *SOSRepository) Update(ctx context.Context, tx DBTX, req *sos.Request) error {
	var solvable pgtype.Bool
	if v := req.Solvable(); v != nil {
		solvable = pgtype.Bool{Bool: *v, Valid: true}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE sos_requests
		SET status = $2, assigned_agent_id = $3, staff_notes = $4, solvable = $5, updated_at = $6
		WHERE id = $1`,
		req.ID(), req.Status().String(),
		pgconv.UUIDPtrToPgtype(req.AssignedAgentID()),
		pgconv.StringPtrToPgtype(req.StaffNotes()),
		solvable, req.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update sos request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("sos request not found", nil, infra.KindNotFound)
	}
	return nil
}
