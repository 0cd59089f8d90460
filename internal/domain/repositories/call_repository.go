package repositories

import (
	"context"

	"github.com/calldesk/callcenter-backend/internal/domain/entities"
)

// CreateCallInput represents input for creating a call record.
type CreateCallInput struct {
	CallerID string
	AgentAID string
	Metadata map[string]string
}

// CallRepository defines call record persistence operations.
//
// Create generates the identity and creation timestamp, persists the record
// and returns its stored state. Get returns errors.ErrNotFound when the id
// is absent. Patch applies only the supplied fields and returns the fully
// updated record; an empty patch fails with errors.ErrInvalidArgument and
// never touches storage.
type CallRepository interface {
	Create(ctx context.Context, input CreateCallInput) (*entities.Call, error)
	Get(ctx context.Context, callID string) (*entities.Call, error)
	Patch(ctx context.Context, callID string, patch entities.CallPatch) (*entities.Call, error)
	ListByAgent(ctx context.Context, agentID string, limit int) ([]*entities.Call, error)
}
