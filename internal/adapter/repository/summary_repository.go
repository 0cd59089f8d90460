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

const defaultSummaryListLimit = 20

// RedisSummaryRepository persists summary records in Redis.
type RedisSummaryRepository struct {
	rdb   *redis.Client
	table string
}

// NewSummaryRepository creates a Redis-backed summary repository.
func NewSummaryRepository(rdb *redis.Client, table string) *RedisSummaryRepository {
	return &RedisSummaryRepository{rdb: rdb, table: table}
}

// Create persists a new summary record with a fresh identity and timestamp.
func (r *RedisSummaryRepository) Create(ctx context.Context, input repositories.CreateSummaryInput) (*entities.Summary, error) {
	summary := &entities.Summary{
		SummaryID:   "sum-" + uuid.New().String(),
		CallID:      input.CallID,
		SummaryText: input.SummaryText,
		Model:       input.Model,
		CreatedAt:   time.Now().UTC(),
		Metadata:    input.Metadata,
	}

	fields := map[string]interface{}{
		"summaryId":   summary.SummaryID,
		"callId":      summary.CallID,
		"summaryText": summary.SummaryText,
		"model":       summary.Model,
		"createdAt":   formatTime(summary.CreatedAt),
		"metadata":    marshalMeta(summary.Metadata),
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, recordKey(r.table, summary.SummaryID), fields)
	pipe.ZAdd(ctx, indexKey(r.table, "call", summary.CallID), redis.Z{
		Score:  float64(summary.CreatedAt.UnixNano()),
		Member: summary.SummaryID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create summary: %w", err)
	}
	return summary, nil
}

// Get fetches a summary by id.
func (r *RedisSummaryRepository) Get(ctx context.Context, summaryID string) (*entities.Summary, error) {
	fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, summaryID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get summary %s: %w", summaryID, err)
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNotFound("summary").WithDetail("summaryId", summaryID)
	}
	return summaryFromFields(fields), nil
}

// Patch applies the supplied fields only. An empty patch is rejected before
// any write.
func (r *RedisSummaryRepository) Patch(ctx context.Context, summaryID string, patch entities.SummaryPatch) (*entities.Summary, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}

	key := recordKey(r.table, summaryID)
	exists, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("patch summary %s: %w", summaryID, err)
	}
	if exists == 0 {
		return nil, apperrors.ErrNotFound("summary").WithDetail("summaryId", summaryID)
	}

	if err := r.rdb.HSet(ctx, key, "metadata", marshalMeta(patch.Metadata)).Err(); err != nil {
		return nil, fmt.Errorf("patch summary %s: %w", summaryID, err)
	}
	return r.Get(ctx, summaryID)
}

// ListByCall returns the call's summaries, newest first.
func (r *RedisSummaryRepository) ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Summary, error) {
	if limit <= 0 {
		limit = defaultSummaryListLimit
	}
	ids, err := r.rdb.ZRevRange(ctx, indexKey(r.table, "call", callID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list summaries for call %s: %w", callID, err)
	}

	summaries := make([]*entities.Summary, 0, len(ids))
	for _, id := range ids {
		fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list summaries for call %s: %w", callID, err)
		}
		if len(fields) == 0 {
			continue
		}
		summaries = append(summaries, summaryFromFields(fields))
	}
	return summaries, nil
}

func summaryFromFields(fields map[string]string) *entities.Summary {
	return &entities.Summary{
		SummaryID:   fields["summaryId"],
		CallID:      fields["callId"],
		SummaryText: fields["summaryText"],
		Model:       fields["model"],
		CreatedAt:   parseTime(fields["createdAt"]),
		Metadata:    unmarshalMeta(fields["metadata"]),
	}
}
