// Package transfer implements the warm-transfer workflow: move an
// in-progress call to a new agent, with an AI summary of the prior
// conversation handed to the receiving side.
package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/calldesk/callcenter-backend/errors"
	"github.com/calldesk/callcenter-backend/internal/domain/entities"
	"github.com/calldesk/callcenter-backend/internal/domain/repositories"
	"github.com/calldesk/callcenter-backend/internal/infrastructure/external/livekit"
	"github.com/calldesk/callcenter-backend/internal/infrastructure/external/openai"
)

// placeholderTranscript is summarized when no transcript text can be
// resolved; summarization always produces some summary.
const placeholderTranscript = "No transcript provided"

// transcriptHintLimit bounds the transcript excerpt stored on the transfer
// record.
const transcriptHintLimit = 200

// generatedBy tags summaries produced by this workflow.
const generatedBy = "transfers.initiate"

// Service drives the warm-transfer sequence against its collaborators. All
// dependencies are injected; the service holds no global state.
type Service struct {
	calls      repositories.CallRepository
	summaries  repositories.SummaryRepository
	transfers  repositories.TransferRepository
	rooms      livekit.Client
	summarizer openai.Summarizer
	model      string
	tokenTTL   time.Duration
	logger     *zap.Logger
}

// NewService creates a transfer service. model names the summarization
// method recorded on each summary; tokenTTL bounds minted join tokens and
// falls back to the provider default when zero.
func NewService(
	calls repositories.CallRepository,
	summaries repositories.SummaryRepository,
	transfers repositories.TransferRepository,
	rooms livekit.Client,
	summarizer openai.Summarizer,
	model string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		calls:      calls,
		summaries:  summaries,
		transfers:  transfers,
		rooms:      rooms,
		summarizer: summarizer,
		model:      model,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// InitiateInput represents input for initiating a warm transfer. CallID and
// FromAgentID are required; the target may be an agent id, a phone number,
// or absent entirely.
type InitiateInput struct {
	CallID         string
	FromAgentID    string
	ToAgentID      string
	ToAgentPhone   string
	TranscriptText string
}

// InitiateResult is the all-steps-succeeded outcome of a warm transfer.
// There is no partially-populated success: callers either get every field
// or an error.
type InitiateResult struct {
	TransferID   string
	TransferRoom string
	SummaryID    string
	TokenA       string
	TokenB       string
	SummaryText  string
}

// Initiate executes the warm-transfer sequence:
//
//  1. create the transfer room (fatal on failure),
//  2. resolve transcript text from the request or the call record,
//     falling back to a placeholder,
//  3. summarize (fatal on failure),
//  4. persist the summary, then the transfer record,
//  5. mark the call as transferring,
//  6. mint join tokens for both agents.
//
// Records written before a failing step are not rolled back; the returned
// error names the failed step for manual reconciliation.
func (s *Service) Initiate(ctx context.Context, input InitiateInput) (*InitiateResult, error) {
	if input.CallID == "" || input.FromAgentID == "" {
		return nil, apperrors.ErrInvalidArgument("callId and agentAId are required")
	}

	transferRoom, err := s.rooms.EnsureRoom(ctx, livekit.NewRoomName())
	if err != nil {
		return nil, apperrors.ErrProviderUnavailable("room provider", "ensure-room", err)
	}

	transcriptText, err := s.resolveTranscript(ctx, input)
	if err != nil {
		return nil, err
	}

	summarizeInput := transcriptText
	if summarizeInput == "" {
		summarizeInput = placeholderTranscript
	}
	summaryText, err := s.summarizer.Summarize(ctx, summarizeInput)
	if err != nil {
		return nil, apperrors.ErrProviderUnavailable("summarizer", "summarize", err)
	}

	summary, err := s.summaries.Create(ctx, repositories.CreateSummaryInput{
		CallID:      input.CallID,
		SummaryText: summaryText,
		Model:       s.model,
		Metadata:    map[string]string{"generatedBy": generatedBy},
	})
	if err != nil {
		return nil, storageErr("save-summary", err)
	}

	transferRecord, err := s.transfers.Create(ctx, repositories.CreateTransferInput{
		CallID:         input.CallID,
		FromAgentID:    input.FromAgentID,
		Target:         resolveTarget(input),
		TransferRoom:   transferRoom,
		SummaryID:      summary.SummaryID,
		TranscriptHint: truncateRunes(transcriptText, transcriptHintLimit),
	})
	if err != nil {
		return nil, storageErr("create-transfer", err)
	}

	status := entities.CallStatusTransferring
	if _, err := s.calls.Patch(ctx, input.CallID, entities.CallPatch{
		Status:        &status,
		LastSummaryID: &summary.SummaryID,
		TransferID:    &transferRecord.TransferID,
	}); err != nil {
		return nil, storageErr("update-call", err)
	}

	tokenOpts := &livekit.TokenOptions{TTL: s.tokenTTL}
	tokenA, err := s.rooms.MintToken(transferRoom, input.FromAgentID, tokenOpts)
	if err != nil {
		return nil, apperrors.ErrProviderUnavailable("room provider", "mint-token", err)
	}

	// An unknown counterpart still gets a token, under a synthesized
	// identity it can later claim.
	identityB := input.ToAgentID
	if identityB == "" {
		identityB = "agent-" + uuid.New().String()
	}
	tokenB, err := s.rooms.MintToken(transferRoom, identityB, tokenOpts)
	if err != nil {
		return nil, apperrors.ErrProviderUnavailable("room provider", "mint-token", err)
	}

	s.logger.Info("transfer initiated",
		zap.String("callId", input.CallID),
		zap.String("transferId", transferRecord.TransferID),
		zap.String("transferRoom", transferRoom),
		zap.String("summaryId", summary.SummaryID),
	)

	return &InitiateResult{
		TransferID:   transferRecord.TransferID,
		TransferRoom: transferRoom,
		SummaryID:    summary.SummaryID,
		TokenA:       tokenA,
		TokenB:       tokenB,
		SummaryText:  summaryText,
	}, nil
}

// resolveTranscript prefers the caller-supplied text, then the call
// record's latest transcript. An absent call record is non-fatal; a failed
// store read is.
func (s *Service) resolveTranscript(ctx context.Context, input InitiateInput) (string, error) {
	if input.TranscriptText != "" {
		return input.TranscriptText, nil
	}

	call, err := s.calls.Get(ctx, input.CallID)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrorCode_NOT_FOUND {
			s.logger.Warn("call record not found, summarizing placeholder",
				zap.String("callId", input.CallID))
			return "", nil
		}
		return "", storageErr("load-call", err)
	}
	return call.LatestTranscript, nil
}

// resolveTarget maps the request's optional target fields onto the tagged
// target variant. A known agent id wins over a phone number.
func resolveTarget(input InitiateInput) entities.TransferTarget {
	switch {
	case input.ToAgentID != "":
		return entities.AgentTarget(input.ToAgentID)
	case input.ToAgentPhone != "":
		return entities.PhoneTarget(input.ToAgentPhone)
	default:
		return entities.UnassignedTarget()
	}
}

// storageErr classifies a failed store operation. Invalid-argument errors
// keep their class; everything else, including a record that went missing
// mid-workflow, is a storage failure tagged with the step that died.
func storageErr(step string, err error) error {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrorCode_INVALID_ARGUMENT {
		return appErr.WithDetail("step", step)
	}
	return apperrors.ErrStorageFailure(step, err)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
