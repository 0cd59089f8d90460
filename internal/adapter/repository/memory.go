package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/calldesk/callcenter-backend/errors"
	"github.com/calldesk/callcenter-backend/internal/domain/entities"
	"github.com/calldesk/callcenter-backend/internal/domain/repositories"
)

// MemoryStore holds all five record kinds in process memory. It implements
// the same contract as the Redis repositories and backs local development
// (STORE_USE_MEMORY) and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	calls       map[string]entities.Call
	summaries   map[string]entities.Summary
	transfers   map[string]entities.Transfer
	transcripts map[string]entities.Transcript
	agents      map[string]entities.Agent
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		calls:       make(map[string]entities.Call),
		summaries:   make(map[string]entities.Summary),
		transfers:   make(map[string]entities.Transfer),
		transcripts: make(map[string]entities.Transcript),
		agents:      make(map[string]entities.Agent),
	}
}

// Calls returns the store's call repository view.
func (s *MemoryStore) Calls() repositories.CallRepository { return (*memoryCallRepo)(s) }

// Summaries returns the store's summary repository view.
func (s *MemoryStore) Summaries() repositories.SummaryRepository { return (*memorySummaryRepo)(s) }

// Transfers returns the store's transfer repository view.
func (s *MemoryStore) Transfers() repositories.TransferRepository { return (*memoryTransferRepo)(s) }

// Transcripts returns the store's transcript repository view.
func (s *MemoryStore) Transcripts() repositories.TranscriptRepository {
	return (*memoryTranscriptRepo)(s)
}

// Agents returns the store's agent repository view.
func (s *MemoryStore) Agents() repositories.AgentRepository { return (*memoryAgentRepo)(s) }

// SeedCall inserts a pre-built call record, for tests.
func (s *MemoryStore) SeedCall(call entities.Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[call.CallID] = call
}

type memoryCallRepo MemoryStore

func (r *memoryCallRepo) Create(ctx context.Context, input repositories.CreateCallInput) (*entities.Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := entities.Call{
		CallID:    "call-" + uuid.New().String(),
		CallerID:  input.CallerID,
		AgentAID:  input.AgentAID,
		Status:    entities.CallStatusActive,
		CreatedAt: time.Now().UTC(),
		Metadata:  input.Metadata,
	}
	r.calls[call.CallID] = call
	return &call, nil
}

func (r *memoryCallRepo) Get(ctx context.Context, callID string) (*entities.Call, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	call, ok := r.calls[callID]
	if !ok {
		return nil, apperrors.ErrNotFound("call").WithDetail("callId", callID)
	}
	return &call, nil
}

func (r *memoryCallRepo) Patch(ctx context.Context, callID string, patch entities.CallPatch) (*entities.Call, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[callID]
	if !ok {
		return nil, apperrors.ErrNotFound("call").WithDetail("callId", callID)
	}
	if patch.Status != nil {
		call.Status = *patch.Status
	}
	if patch.LatestTranscript != nil {
		call.LatestTranscript = *patch.LatestTranscript
	}
	if patch.LastSummaryID != nil {
		call.LastSummaryID = *patch.LastSummaryID
	}
	if patch.TransferID != nil {
		call.TransferID = *patch.TransferID
	}
	r.calls[callID] = call
	return &call, nil
}

func (r *memoryCallRepo) ListByAgent(ctx context.Context, agentID string, limit int) ([]*entities.Call, error) {
	if limit <= 0 {
		limit = defaultCallListLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var calls []*entities.Call
	for id := range r.calls {
		call := r.calls[id]
		if call.AgentAID == agentID {
			calls = append(calls, &call)
		}
	}
	sortNewestFirst(calls, func(c *entities.Call) time.Time { return c.CreatedAt })
	if len(calls) > limit {
		calls = calls[:limit]
	}
	return calls, nil
}

type memorySummaryRepo MemoryStore

func (r *memorySummaryRepo) Create(ctx context.Context, input repositories.CreateSummaryInput) (*entities.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := entities.Summary{
		SummaryID:   "sum-" + uuid.New().String(),
		CallID:      input.CallID,
		SummaryText: input.SummaryText,
		Model:       input.Model,
		CreatedAt:   time.Now().UTC(),
		Metadata:    input.Metadata,
	}
	r.summaries[summary.SummaryID] = summary
	return &summary, nil
}

func (r *memorySummaryRepo) Get(ctx context.Context, summaryID string) (*entities.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.summaries[summaryID]
	if !ok {
		return nil, apperrors.ErrNotFound("summary").WithDetail("summaryId", summaryID)
	}
	return &summary, nil
}

func (r *memorySummaryRepo) Patch(ctx context.Context, summaryID string, patch entities.SummaryPatch) (*entities.Summary, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	summary, ok := r.summaries[summaryID]
	if !ok {
		return nil, apperrors.ErrNotFound("summary").WithDetail("summaryId", summaryID)
	}
	summary.Metadata = patch.Metadata
	r.summaries[summaryID] = summary
	return &summary, nil
}

func (r *memorySummaryRepo) ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Summary, error) {
	if limit <= 0 {
		limit = defaultSummaryListLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var summaries []*entities.Summary
	for id := range r.summaries {
		summary := r.summaries[id]
		if summary.CallID == callID {
			summaries = append(summaries, &summary)
		}
	}
	sortNewestFirst(summaries, func(s *entities.Summary) time.Time { return s.CreatedAt })
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

type memoryTransferRepo MemoryStore

func (r *memoryTransferRepo) Create(ctx context.Context, input repositories.CreateTransferInput) (*entities.Transfer, error) {
	target := input.Target
	if target.Kind == "" {
		target = entities.UnassignedTarget()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	transfer := entities.Transfer{
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
	r.transfers[transfer.TransferID] = transfer
	return &transfer, nil
}

func (r *memoryTransferRepo) Get(ctx context.Context, transferID string) (*entities.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transfer, ok := r.transfers[transferID]
	if !ok {
		return nil, apperrors.ErrNotFound("transfer").WithDetail("transferId", transferID)
	}
	return &transfer, nil
}

func (r *memoryTransferRepo) Patch(ctx context.Context, transferID string, patch entities.TransferPatch) (*entities.Transfer, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	transfer, ok := r.transfers[transferID]
	if !ok {
		return nil, apperrors.ErrNotFound("transfer").WithDetail("transferId", transferID)
	}
	transfer.Status = *patch.Status
	r.transfers[transferID] = transfer
	return &transfer, nil
}

func (r *memoryTransferRepo) ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Transfer, error) {
	if limit <= 0 {
		limit = defaultTransferListLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var transfers []*entities.Transfer
	for id := range r.transfers {
		transfer := r.transfers[id]
		if transfer.CallID == callID {
			transfers = append(transfers, &transfer)
		}
	}
	sortNewestFirst(transfers, func(t *entities.Transfer) time.Time { return t.CreatedAt })
	if len(transfers) > limit {
		transfers = transfers[:limit]
	}
	return transfers, nil
}

type memoryTranscriptRepo MemoryStore

func (r *memoryTranscriptRepo) Create(ctx context.Context, input repositories.CreateTranscriptInput) (*entities.Transcript, error) {
	if input.CallID == "" || input.Text == "" {
		return nil, apperrors.ErrInvalidArgument("callId and text are required for transcript")
	}
	source := input.Source
	if source == "" {
		source = "manual"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	transcript := entities.Transcript{
		TranscriptID: "tx-" + uuid.New().String(),
		CallID:       input.CallID,
		Text:         input.Text,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
		Metadata:     input.Metadata,
	}
	r.transcripts[transcript.TranscriptID] = transcript
	return &transcript, nil
}

func (r *memoryTranscriptRepo) Get(ctx context.Context, transcriptID string) (*entities.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transcript, ok := r.transcripts[transcriptID]
	if !ok {
		return nil, apperrors.ErrNotFound("transcript").WithDetail("transcriptId", transcriptID)
	}
	return &transcript, nil
}

func (r *memoryTranscriptRepo) Patch(ctx context.Context, transcriptID string, patch entities.TranscriptPatch) (*entities.Transcript, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	transcript, ok := r.transcripts[transcriptID]
	if !ok {
		return nil, apperrors.ErrNotFound("transcript").WithDetail("transcriptId", transcriptID)
	}
	transcript.Metadata = patch.Metadata
	r.transcripts[transcriptID] = transcript
	return &transcript, nil
}

func (r *memoryTranscriptRepo) ListByCall(ctx context.Context, callID string, limit int) ([]*entities.Transcript, error) {
	if limit <= 0 {
		limit = defaultTranscriptListLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var transcripts []*entities.Transcript
	for id := range r.transcripts {
		transcript := r.transcripts[id]
		if transcript.CallID == callID {
			transcripts = append(transcripts, &transcript)
		}
	}
	sortNewestFirst(transcripts, func(t *entities.Transcript) time.Time { return t.CreatedAt })
	if len(transcripts) > limit {
		transcripts = transcripts[:limit]
	}
	return transcripts, nil
}

type memoryAgentRepo MemoryStore

func (r *memoryAgentRepo) Create(ctx context.Context, input repositories.CreateAgentInput) (*entities.Agent, error) {
	if input.Name == "" {
		return nil, apperrors.ErrInvalidArgument("name required to create agent")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	agent := entities.Agent{
		AgentID:     "agent-" + uuid.New().String(),
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		Metadata:    input.Metadata,
	}
	r.agents[agent.AgentID] = agent
	return &agent, nil
}

func (r *memoryAgentRepo) Get(ctx context.Context, agentID string) (*entities.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.agents[agentID]
	if !ok {
		return nil, apperrors.ErrNotFound("agent").WithDetail("agentId", agentID)
	}
	return &agent, nil
}

func (r *memoryAgentRepo) Patch(ctx context.Context, agentID string, patch entities.AgentPatch) (*entities.Agent, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument("no fields to update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[agentID]
	if !ok {
		return nil, apperrors.ErrNotFound("agent").WithDetail("agentId", agentID)
	}
	if patch.Name != nil {
		agent.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		agent.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Active != nil {
		agent.Active = *patch.Active
	}
	r.agents[agentID] = agent
	return &agent, nil
}

func (r *memoryAgentRepo) List(ctx context.Context, activeOnly bool, limit int) ([]*entities.Agent, error) {
	if limit <= 0 {
		limit = defaultAgentListLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var agents []*entities.Agent
	for id := range r.agents {
		agent := r.agents[id]
		if activeOnly && !agent.Active {
			continue
		}
		agents = append(agents, &agent)
	}
	sortNewestFirst(agents, func(a *entities.Agent) time.Time { return a.CreatedAt })
	if len(agents) > limit {
		agents = agents[:limit]
	}
	return agents, nil
}

func sortNewestFirst[T any](items []*T, createdAt func(*T) time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
