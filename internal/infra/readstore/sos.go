package readstore

import (
	"context"

	"bikefleet/internal/infra"
	"bikefleet/internal/infra/repository"
	"bikefleet/internal/pkg/pgconv"
	"bikefleet/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SOSReadStore struct {
	db repository.DBTX
}

func NewSOSReadStore(db repository.DBTX) *SOSReadStore {
	return &SOSReadStore{db: db}
}

const sosViewColumns = `id, rental_id, user_id, bike_id, issue, latitude, longitude,
	status, assigned_agent_id, staff_notes, solvable, created_at, updated_at`

func (r *SOSReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SOSView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sosViewColumns+` FROM sos_requests WHERE id = $1`, id)
	view, err := scanSOSView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sos request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sos request by ID", err)
	}
	return view, nil
}

func (r *SOSReadStore) ListByStatus(ctx context.Context, statuses []string) ([]queries.SOSView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sosViewColumns+` FROM sos_requests WHERE status = ANY($1) ORDER BY created_at`,
		statuses,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sos requests", err)
	}
	defer rows.Close()

	views := make([]queries.SOSView, 0)
	for rows.Next() {
		view, err := scanSOSView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan sos row", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sos rows", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSOSView(row rowScanner) (*queries.SOSView, error) {
	var (
		view            queries.SOSView
		assignedAgentID pgtype.UUID
		staffNotes      pgtype.Text
		solvable        pgtype.Bool
	)
	err := row.Scan(
		&view.ID, &view.RentalID, &view.UserID, &view.BikeID, &view.Issue,
		&view.Latitude, &view.Longitude, &view.Status,
		&assignedAgentID, &staffNotes, &solvable, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.AssignedAgentID = pgconv.UUIDPtrFromPgtype(assignedAgentID)
	view.StaffNotes = pgconv.StringPtrFromPgtype(staffNotes)
	if solvable.Valid {
		v := solvable.Bool
		view.Solvable = &v
	}
	return &view, nil
}
