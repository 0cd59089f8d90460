package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/calldesk/callcenter-backend/errors"
	"github.com/calldesk/callcenter-backend/internal/domain/entities"
	"github.com/calldesk/callcenter-backend/internal/domain/repositories"
)

const defaultTranscriptListLimit = 50

// RedisTranscriptRepository persists transcript records in Redis.
type RedisTranscriptRepository struct {
	rdb   *redis.Client
	table string
}

// NewTranscriptRepository creates a Redis-backed transcript repository.
func NewTranscriptRepository(rdb *redis.Client, table string) *RedisTranscriptRepository {
	return &RedisTranscriptRepository{rdb: rdb, table: table}
}

// Create persists a new transcript record with a fresh identity and
// timestamp. CallID and Text are required.
func (r *RedisTranscriptRepository) Create(ctx context.Context, input repositories.CreateTranscriptInput) (*entities.Transcript, error) {
	if input.CallID == "" || input.Text == "" {
		return nil, apperrors.ErrInvalidArgument("callId and text are required for transcript")
	}

	source := input.Source
	if source == "" {
		source = "manual"
	}

	transcript := &entities.Transcript{
		TranscriptID: "tx-" + uuid.New().String(),
		CallID:       input.CallID,
		Text:         input.Text,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
		Metadata:     input.Metadata,
	}

	fields := map[string]interface{}{
		"transcriptId": transcript.TranscriptID,
		"callId":       transcript.CallID,
		"text":         transcript.Text,
		"source":       transcript.Source,
		"createdAt":    formatTime(transcript.CreatedAt),
		"metadata":     marshalMeta(transcript.Metadata),
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, recordKey(r.table, transcript.TranscriptID), fields)
	pipe.ZAdd(ctx, indexKey(r.table, "call", transcript.CallID), redis.Z{
		Score:  float64(transcript.CreatedAt.UnixNano()),
		Member: transcript.TranscriptID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create transcript: %w", err)
	}
	return transcript, nil
}

// Get fetches a transcript by id.
func (r *RedisTranscriptRepository) Get(ctx context.Context, transcriptID string) (*entities.Transcript, error) {
	fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, transcriptID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get transcript %s: %w", transcriptID, err)
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNotFound("transcript").WithDetail("transcriptId", transcriptID)
	}
	return transcriptFromFields(fields), nil
}

// Patch applies the supplied fields only. An empty patch is rejected before
// any write.
func (r *RedisTranscriptRepository) Patch(ctx context.Context, transcriptID string, patch entities.TranscriptPatch) (*entities.Transcript, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}

	key := recordKey(r.table, transcriptID)
	exists, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("patch transcript %s: %w", transcriptID, err)
	}
	if exists == 0 {
		return nil, apperrors.ErrNotFound("transcript").WithDetail("transcriptId", transcriptID)
	}

	if err := r.rdb.HSet(ctx, key, "metadata", marshalMeta(patch.Metadata)).Err(); err != nil {
		return nil, fmt.Errorf("patch transcript %s: %w", transcriptID, err)
	}
	return r.Get(ctx, transcriptID)
}

// ListByCall returns the call's transcripts, newest first.
func (r *RedisTranscriptRepository) ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Transcript, error) {
	if limit <= 0 {
		limit = defaultTranscriptListLimit
	}
	ids, err := r.rdb.ZRevRange(ctx, indexKey(r.table, "call", callID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list transcripts for call %s: %w", callID, err)
	}

	transcripts := make([]*entities.Transcript, 0, len(ids))
	for _, id := range ids {
		fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list transcripts for call %s: %w", callID, err)
		}
		if len(fields) == 0 {
			continue
		}
		transcripts = append(transcripts, transcriptFromFields(fields))
	}
	return transcripts, nil
}

func transcriptFromFields(fields map[string]string) *entities.Transcript {
	return &entities.Transcript{
		TranscriptID: fields["transcriptId"],
		CallID:       fields["callId"],
		Text:         fields["text"],
		Source:       fields["source"],
		CreatedAt:    parseTime(fields["createdAt"]),
		Metadata:     unmarshalMeta(fields["metadata"]),
	}
}
