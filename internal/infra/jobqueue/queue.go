// Package jobqueue is a Postgres-backed job queue. Enqueue is guarded by a
// unique dedupe key so logically-identical work (the same calendar day's
// fixed-slot generation) can only be queued once; workers claim jobs with
// SKIP LOCKED so multiple workers never run the same job.
package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bikefleet/internal/infra"
	"bikefleet/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// JobGenerateFixedSlot materializes a day's fixed-slot reservations.
const JobGenerateFixedSlot = "generate-fixed-slot"

type Job struct {
	ID        uuid.UUID
	Name      string
	DedupeKey string
	Payload   json.RawMessage
	CreatedAt time.Time
}

type Queue struct {
	pool *pgxpool.Pool
}

func NewQueue(pool *pgxpool.Pool) *Queue {
	return &Queue{pool: pool}
}

// Enqueue inserts a job. A second enqueue with the same (name, dedupeKey)
// while the first is queued, running or done fails with DUPLICATE_KEY; that
// rejection is the steady-state defense against double triggers, not a fault.
func (q *Queue) Enqueue(ctx context.Context, name, dedupeKey string, payload json.RawMessage) error {
	if payload == nil {
		payload = json.RawMessage(`{}`)
	}
	_, err := q.pool.Exec(ctx, `
		INSERT INTO jobs (id, name, dedupe_key, payload, status)
		VALUES ($1, $2, $3, $4, 'queued')`,
		uuid.New(), name, dedupeKey, payload,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("job already enqueued for dedupe key "+dedupeKey, err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to enqueue job", err)
	}
	return nil
}

// Claim atomically takes the oldest queued job, or returns (nil, nil) when
// the queue is empty.
func (q *Queue) Claim(ctx context.Context) (*Job, error) {
	var job Job
	err := q.pool.QueryRow(ctx, `
		UPDATE jobs SET status = 'running', started_at = now()
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = 'queued'
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, name, dedupe_key, payload, created_at`,
	).Scan(&job.ID, &job.Name, &job.DedupeKey, &job.Payload, &job.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to claim job", err)
	}
	return &job, nil
}

func (q *Queue) MarkDone(ctx context.Context, id uuid.UUID) error {
	if _, err := q.pool.Exec(ctx, `UPDATE jobs SET status = 'done', finished_at = now() WHERE id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to mark job done", err)
	}
	return nil
}

func (q *Queue) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	if _, err := q.pool.Exec(ctx, `UPDATE jobs SET status = 'failed', finished_at = now(), failure_reason = $2 WHERE id = $1`, id, reason); err != nil {
		return infra.WrapRepoErr("failed to mark job failed", err)
	}
	return nil
}
