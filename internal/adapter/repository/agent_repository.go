package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/calldesk/callcenter-backend/errors"
	"github.com/calldesk/callcenter-backend/internal/domain/entities"
	"github.com/calldesk/callcenter-backend/internal/domain/repositories"
)

const defaultAgentListLimit = 100

// RedisAgentRepository persists agent records in Redis.
type RedisAgentRepository struct {
	rdb   *redis.Client
	table string
}

// NewAgentRepository creates a Redis-backed agent repository.
func NewAgentRepository(rdb *redis.Client, table string) *RedisAgentRepository {
	return &RedisAgentRepository{rdb: rdb, table: table}
}

// Create persists a new agent record with a fresh identity and timestamp.
// New agents start out active.
func (r *RedisAgentRepository) Create(ctx context.Context, input repositories.CreateAgentInput) (*entities.Agent, error) {
	if input.Name == "" {
		return nil, apperrors.ErrInvalidArgument("name required to create agent")
	}

	agent := &entities.Agent{
		AgentID:     "agent-" + uuid.New().String(),
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		Metadata:    input.Metadata,
	}

	fields := map[string]interface{}{
		"agentId":     agent.AgentID,
		"name":        agent.Name,
		"phoneNumber": agent.PhoneNumber,
		"active":      strconv.FormatBool(agent.Active),
		"createdAt":   formatTime(agent.CreatedAt),
		"metadata":    marshalMeta(agent.Metadata),
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, recordKey(r.table, agent.AgentID), fields)
	pipe.ZAdd(ctx, indexKey(r.table, "all", "agents"), redis.Z{
		Score:  float64(agent.CreatedAt.UnixNano()),
		Member: agent.AgentID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return agent, nil
}

// Get fetches an agent by id.
func (r *RedisAgentRepository) Get(ctx context.Context, agentID string) (*entities.Agent, error) {
	fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, agentID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get agent %s: %w", agentID, err)
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNotFound("agent").WithDetail("agentId", agentID)
	}
	return agentFromFields(fields), nil
}

// Patch applies the supplied fields only. An empty patch is rejected before
// any write.
func (r *RedisAgentRepository) Patch(ctx context.Context, agentID string, patch entities.AgentPatch) (*entities.Agent, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}

	key := recordKey(r.table, agentID)
	exists, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("patch agent %s: %w", agentID, err)
	}
	if exists == 0 {
		return nil, apperrors.ErrNotFound("agent").WithDetail("agentId", agentID)
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.PhoneNumber != nil {
		fields["phoneNumber"] = *patch.PhoneNumber
	}
	if patch.Active != nil {
		fields["active"] = strconv.FormatBool(*patch.Active)
	}
	if err := r.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return nil, fmt.Errorf("patch agent %s: %w", agentID, err)
	}
	return r.Get(ctx, agentID)
}

// List returns agents, newest first, optionally filtered to active ones.
func (r *RedisAgentRepository) List(ctx context.Context, activeOnly bool, limit int) ([]*entities.Agent, error) {
	if limit <= 0 {
		limit = defaultAgentListLimit
	}
	ids, err := r.rdb.ZRevRange(ctx, indexKey(r.table, "all", "agents"), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	agents := make([]*entities.Agent, 0, len(ids))
	for _, id := range ids {
		fields, err := r.rdb.HGetAll(ctx, recordKey(r.table, id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list agents: %w", err)
		}
		if len(fields) == 0 {
			continue
		}
		agent := agentFromFields(fields)
		if activeOnly && !agent.Active {
			continue
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

func agentFromFields(fields map[string]string) *entities.Agent {
	active, _ := strconv.ParseBool(fields["active"])
	return &entities.Agent{
		AgentID:     fields["agentId"],
		Name:        fields["name"],
		PhoneNumber: fields["phoneNumber"],
		Active:      active,
		CreatedAt:   parseTime(fields["createdAt"]),
		Metadata:    unmarshalMeta(fields["metadata"]),
	}
}
