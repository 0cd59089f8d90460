package repositories

import (
	"context"

	"github.com/calldesk/callcenter-backend/internal/domain/entities"
)

// CreateTransferInput represents input for creating a transfer record.
// TranscriptHint is an optional truncated excerpt of the summarized
// transcript, stored alongside the record.
type CreateTransferInput struct {
	CallID         string
	FromAgentID    string
	Target         entities.TransferTarget
	TransferRoom   string
	SummaryID      string
	TranscriptHint string
}

// TransferRepository defines transfer record persistence operations.
type TransferRepository interface {
	Create(ctx context.Context, input CreateTransferInput) (*entities.Transfer, error)
	Get(ctx context.Context, transferID string) (*entities.Transfer, error)
	Patch(ctx context.Context, transferID string, patch entities.TransferPatch) (*entities.Transfer, error)
	ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Transfer, error)
}
