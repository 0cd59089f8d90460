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

const defaultCallListLimit = 50

// RedisCallRepository persists call records in Redis.
type RedisCallRepository struct {
	rdb   *redis.Client
	table string
}

// NewCallRepository creates a Redis-backed call repository.
func NewCallRepository(rdb *redis.Client, table string) *RedisCallRepository {
	return &RedisCallRepository{rdb: rdb, table: table}
}

// Create persists a new call record with a fresh identity and timestamp.
func (r *RedisCallRepository) Create(ctx context.Context, input repositories.CreateCallInput) (*entities.Call, error) {
	call := &entities.Call{
		CallID:    "call-" + uuid.New().String(),
		CallerID:  input.CallerID,
		AgentAID:  input.AgentAID,
		Status:    entities.CallStatusActive,
		CreatedAt: time.Now().UTC(),
		Metadata:  input.Metadata,
	}

	fields := map[string]interface{}{
		"callId":    call.CallID,
		"callerId":  call.CallerID,
		"agentAId":  call.AgentAID,
		"status":    call.Status,
		"createdAt": formatTime(call.CreatedAt),
		"metadata":  marshalMeta(call.Metadata),
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, recordKey(r.table, call.CallID), fields)
	if call.AgentAID != "" {
		pipe.ZAdd(ctx, indexKey(r.table, "agent", call.AgentAID), redis.Z{
			Score:  float64(call.CreatedAt.UnixNano()),
			Member: call.CallID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create call: %w", err)
	}
	return call, nil
}

// Get fetches a call by id.
func (r *RedisCallRepository) Get(ctx context.Context, callID string) (*entities.Call, error) {
	fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, callID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get call %s: %w", callID, err)
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNotFound("call").WithDetail("callId", callID)
	}
	return callFromFields(fields), nil
}

// Patch applies the supplied fields only and returns the record's fully
// updated state. An empty patch is rejected before any write.
func (r *RedisCallRepository) Patch(ctx context.Context, callID string, patch entities.CallPatch) (*entities.Call, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}

	key := recordKey(r.table, callID)
	exists, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("patch call %s: %w", callID, err)
	}
	if exists == 0 {
		return nil, apperrors.ErrNotFound("call").WithDetail("callId", callID)
	}

	fields := map[string]interface{}{}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.LatestTranscript != nil {
		fields["latestTranscript"] = *patch.LatestTranscript
	}
	if patch.LastSummaryID != nil {
		fields["lastSummaryId"] = *patch.LastSummaryID
	}
	if patch.TransferID != nil {
		fields["transferId"] = *patch.TransferID
	}
	if err := r.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return nil, fmt.Errorf("patch call %s: %w", callID, err)
	}
	return r.Get(ctx, callID)
}

// ListByAgent returns the agent's calls, newest first. Reads go through the
// secondary index and may trail writes.
func (r *RedisCallRepository) ListByAgent(ctx context.Context, agentID string, limit int) ([]*entities.Call, error) {
	if limit <= 0 {
		limit = defaultCallListLimit
	}
	ids, err := r.rdb.ZRevRange(ctx, indexKey(r.table, "agent", agentID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list calls for agent %s: %w", agentID, err)
	}

	calls := make([]*entities.Call, 0, len(ids))
	for _, id := range ids {
		fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list calls for agent %s: %w", agentID, err)
		}
		if len(fields) == 0 {
			continue
		}
		calls = append(calls, callFromFields(fields))
	}
	return calls, nil
}

func callFromFields(fields map[string]string) *entities.Call {
	return &entities.Call{
		CallID:           fields["callId"],
		CallerID:         fields["callerId"],
		AgentAID:         fields["agentAId"],
		Status:           fields["status"],
		LatestTranscript: fields["latestTranscript"],
		LastSummaryID:    fields["lastSummaryId"],
		TransferID:       fields["transferId"],
		CreatedAt:        parseTime(fields["createdAt"]),
		Metadata:         unmarshalMeta(fields["metadata"]),
	}
}
