package repositories

import (
	"context"

	"github.com/calldesk/callcenter-backend/internal/domain/entities"
)

// CreateSummaryInput represents input for creating a summary record.
type CreateSummaryInput struct {
	CallID      string
	SummaryText string
	Model       string
	Metadata    map[string]string
}

// SummaryRepository defines summary record persistence operations.
type SummaryRepository interface {
	Create(ctx context.Context, input CreateSummaryInput) (*entities.Summary, error)
	Get(ctx context.Context, summaryID string) (*entities.Summary, error)
	Patch(ctx context.Context, summaryID string, patch entities.SummaryPatch) (*entities.Summary, error)
	ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Summary, error)
}
