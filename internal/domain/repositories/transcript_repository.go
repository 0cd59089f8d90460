package repositories

import (
	"context"

	"github.com/calldesk/callcenter-backend/internal/domain/entities"
)

// CreateTranscriptInput represents input for creating a transcript record.
// CallID and Text are required.
type CreateTranscriptInput struct {
	CallID   string
	Text     string
	Source   string
	Metadata map[string]string
}

// TranscriptRepository defines transcript record persistence operations.
type TranscriptRepository interface {
	Create(ctx context.Context, input CreateTranscriptInput) (*entities.Transcript, error)
	Get(ctx context.Context, transcriptID string) (*entities.Transcript, error)
	Patch(ctx context.Context, transcriptID string, patch entities.TranscriptPatch) (*entities.Transcript, error)
	ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Transcript, error)
}
