package repositories

import (
	"context"

	"github.com/calldesk/callcenter-backend/internal/domain/entities"
)

// CreateAgentInput represents input for creating an agent record. Name is
// required; new agents start out active.
type CreateAgentInput struct {
	Name        string
	PhoneNumber string
	Metadata    map[string]string
}

// AgentRepository defines agent record persistence operations.
type AgentRepository interface {
	Create(ctx context.Context, input CreateAgentInput) (*entities.Agent, error)
	Get(ctx context.Context, agentID string) (*entities.Agent, error)
	Patch(ctx context.Context, agentID string, patch entities.AgentPatch) (*entities.Agent, error)
	List(ctx context.Context, activeOnly bool, limit int) ([]*entities.Agent, error)
}
