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

const defaultTransferListLimit = 20

// RedisTransferRepository persists transfer records in Redis.
type RedisTransferRepository struct {
	rdb   *redis.Client
	table string
}

// NewTransferRepository creates a Redis-backed transfer repository.
func NewTransferRepository(rdb *redis.Client, table string) *RedisTransferRepository {
	return &RedisTransferRepository{rdb: rdb, table: table}
}

// Create persists a new transfer record with a fresh identity and
// timestamp. New transfers start out "initiated".
func (r *RedisTransferRepository) Create(ctx context.Context, input repositories.CreateTransferInput) (*entities.Transfer, error) {
	target := input.Target
	if target.Kind == "" {
		target = entities.UnassignedTarget()
	}

	transfer := &entities.Transfer{
		TransferID:     "xfer-" + uuid.New().String(),
		CallID:         input.CallID,
		FromAgentID:    input.FromAgentID,
		ToAgent:        target,
		TransferRoom:   input.TransferRoom,
		SummaryID:      input.SummaryID,
		Status:         entities.TransferStatusInitiated,
		TranscriptHint: input.TranscriptHint,
		CreatedAt:      time.Now().UTC(),
	}

	fields := map[string]interface{}{
		"transferId":     transfer.TransferID,
		"callId":         transfer.CallID,
		"fromAgentId":    transfer.FromAgentID,
		"toAgentKind":    string(transfer.ToAgent.Kind),
		"toAgent":        transfer.ToAgent.Value,
		"transferRoom":   transfer.TransferRoom,
		"summaryId":      transfer.SummaryID,
		"status":         transfer.Status,
		"transcriptHint": transfer.TranscriptHint,
		"createdAt":      formatTime(transfer.CreatedAt),
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, recordKey(r.table, transfer.TransferID), fields)
	pipe.ZAdd(ctx, indexKey(r.table, "call", transfer.CallID), redis.Z{
		Score:  float64(transfer.CreatedAt.UnixNano()),
		Member: transfer.TransferID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	return transfer, nil
}

// Get fetches a transfer by id.
func (r *RedisTransferRepository) Get(ctx context.Context, transferID string) (*entities.Transfer, error) {
	fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, transferID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get transfer %s: %w", transferID, err)
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNotFound("transfer").WithDetail("transferId", transferID)
	}
	return transferFromFields(fields), nil
}

// Patch applies the supplied fields only. An empty patch is rejected before
// any write.
func (r *RedisTransferRepository) Patch(ctx context.Context, transferID string, patch entities.TransferPatch) (*entities.Transfer, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}

	key := recordKey(r.table, transferID)
	exists, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("patch transfer %s: %w", transferID, err)
	}
	if exists == 0 {
		return nil, apperrors.ErrNotFound("transfer").WithDetail("transferId", transferID)
	}

	if err := r.rdb.HSet(ctx, key, "status", *patch.Status).Err(); err != nil {
		return nil, fmt.Errorf("patch transfer %s: %w", transferID, err)
	}
	return r.Get(ctx, transferID)
}

// ListByCall returns the call's transfer attempts, newest first.
func (r *RedisTransferRepository) ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Transfer, error) {
	if limit <= 0 {
		limit = defaultTransferListLimit
	}
	ids, err := r.rdb.ZRevRange(ctx, indexKey(r.table, "call", callID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list transfers for call %s: %w", callID, err)
	}

	transfers := make([]*entities.Transfer, 0, len(ids))
	for _, id := range ids {
		fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list transfers for call %s: %w", callID, err)
		}
		if len(fields) == 0 {
			continue
		}
		transfers = append(transfers, transferFromFields(fields))
	}
	return transfers, nil
}

func transferFromFields(fields map[string]string) *entities.Transfer {
	target := entities.TransferTarget{
		Kind:  entities.TargetKind(fields["toAgentKind"]),
		Value: fields["toAgent"],
	}
	if target.Kind == "" {
		target = entities.UnassignedTarget()
	}
	return &entities.Transfer{
		TransferID:     fields["transferId"],
		CallID:         fields["callId"],
		FromAgentID:    fields["fromAgentId"],
		ToAgent:        target,
		TransferRoom:   fields["transferRoom"],
		SummaryID:      fields["summaryId"],
		Status:         fields["status"],
		TranscriptHint: fields["transcriptHint"],
		CreatedAt:      parseTime(fields["createdAt"]),
	}
}
