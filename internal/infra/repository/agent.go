package repository

import (
	"context"

	"bikefleet/internal/infra"

	"github.com/google/uuid"
)

// AgentRepository answers existence checks against the field-agent roster.
type AgentRepository struct {
	db DBTX
}

func NewAgentRepository(db DBTX) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) AgentExists(ctx context.Context, agentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM agents WHERE id = $1 AND active)`, agentID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check agent", err)
	}
	return exists, nil
}
