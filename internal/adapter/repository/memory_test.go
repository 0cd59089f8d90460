package repository

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/calldesk/callcenter-backend/errors"
	"github.com/calldesk/callcenter-backend/internal/domain/entities"
	"github.com/calldesk/callcenter-backend/internal/domain/repositories"
)

func TestEmptyPatchRejectedForEveryKind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	checks := []struct {
		name string
		call func() error
	}{
		{"call", func() error {
			_, err := store.Calls().Patch(ctx, "call-x", entities.CallPatch{})
			return err
		}},
		{"summary", func() error {
			_, err := store.Summaries().Patch(ctx, "sum-x", entities.SummaryPatch{})
			return err
		}},
		{"transfer", func() error {
			_, err := store.Transfers().Patch(ctx, "xfer-x", entities.TransferPatch{})
			return err
		}},
		{"transcript", func() error {
			_, err := store.Transcripts().Patch(ctx, "tx-x", entities.TranscriptPatch{})
			return err
		}},
		{"agent", func() error {
			_, err := store.Agents().Patch(ctx, "agent-x", entities.AgentPatch{})
			return err
		}},
	}

	for _, check := range checks {
		err := check.call()
		if err == nil {
			t.Fatalf("%s: empty patch must fail", check.name)
		}
		if apperrors.CodeOf(err) != apperrors.ErrorCode_INVALID_ARGUMENT {
			t.Fatalf("%s: expected INVALID_ARGUMENT, got %s", check.name, apperrors.CodeOf(err))
		}
	}
}

func TestCallPatchAppliesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	call, err := store.Calls().Create(ctx, repositories.CreateCallInput{
		CallerID: "caller-1",
		AgentAID: "agent-A",
		Metadata: map[string]string{"channel": "voice"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if call.Status != entities.CallStatusActive {
		t.Fatalf("new calls start active, got %q", call.Status)
	}

	status := entities.CallStatusTransferring
	updated, err := store.Calls().Patch(ctx, call.CallID, entities.CallPatch{Status: &status})
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if updated.Status != entities.CallStatusTransferring {
		t.Fatalf("status not applied, got %q", updated.Status)
	}
	if updated.CallerID != "caller-1" || updated.AgentAID != "agent-A" {
		t.Fatalf("untouched fields must survive, got %+v", updated)
	}
	if !updated.CreatedAt.Equal(call.CreatedAt) {
		t.Fatal("createdAt must never change")
	}
	if updated.Metadata["channel"] != "voice" {
		t.Fatalf("metadata must survive, got %v", updated.Metadata)
	}
}

func TestGetAbsentRecordIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Calls().Get(ctx, "call-missing")
	if apperrors.CodeOf(err) != apperrors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	_, err = store.Transfers().Get(ctx, "xfer-missing")
	if apperrors.CodeOf(err) != apperrors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestPatchAbsentRecordIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	status := entities.TransferStatusCompleted
	_, err := store.Transfers().Patch(ctx, "xfer-missing", entities.TransferPatch{Status: &status})
	if apperrors.CodeOf(err) != apperrors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestTranscriptCreateRequiresCallAndText(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Transcripts().Create(ctx, repositories.CreateTranscriptInput{CallID: "call-1"})
	if apperrors.CodeOf(err) != apperrors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	_, err = store.Transcripts().Create(ctx, repositories.CreateTranscriptInput{Text: "hello"})
	if apperrors.CodeOf(err) != apperrors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}

	transcript, err := store.Transcripts().Create(ctx, repositories.CreateTranscriptInput{
		CallID: "call-1",
		Text:   "hello",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if transcript.Source != "manual" {
		t.Fatalf("expected default source manual, got %q", transcript.Source)
	}
}

func TestListByCallNewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var ids []string
	for i := 0; i < 3; i++ {
		transcript, err := store.Transcripts().Create(ctx, repositories.CreateTranscriptInput{
			CallID: "call-1",
			Text:   "chunk",
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids = append(ids, transcript.TranscriptID)
		time.Sleep(2 * time.Millisecond)
	}
	// Another call's transcript must not leak into the listing.
	if _, err := store.Transcripts().Create(ctx, repositories.CreateTranscriptInput{
		CallID: "call-2",
		Text:   "other",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	listed, err := store.Transcripts().ListByCall(ctx, "call-1", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 transcripts, got %d", len(listed))
	}
	if listed[0].TranscriptID != ids[2] || listed[2].TranscriptID != ids[0] {
		t.Fatal("expected newest-first ordering")
	}

	bounded, err := store.Transcripts().ListByCall(ctx, "call-1", 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bounded) != 2 {
		t.Fatalf("expected bounded result of 2, got %d", len(bounded))
	}
}

func TestAgentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Agents().Create(ctx, repositories.CreateAgentInput{})
	if apperrors.CodeOf(err) != apperrors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("expected INVALID_ARGUMENT for missing name, got %v", err)
	}

	agent, err := store.Agents().Create(ctx, repositories.CreateAgentInput{
		Name:        "Dana",
		PhoneNumber: "+15550001111",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !agent.Active {
		t.Fatal("new agents start active")
	}

	inactive := false
	if _, err := store.Agents().Patch(ctx, agent.AgentID, entities.AgentPatch{Active: &inactive}); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	active, err := store.Agents().List(ctx, true, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated agent must not be listed as active, got %d", len(active))
	}
	all, err := store.Agents().List(ctx, false, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(all))
	}
}
