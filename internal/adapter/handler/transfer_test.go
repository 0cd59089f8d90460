package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/calldesk/callcenter-backend/errors"
	"github.com/calldesk/callcenter-backend/internal/usecase/transfer"
	pkgvalidator "github.com/calldesk/callcenter-backend/pkg/validator"
)

type fakeInitiator struct {
	lastInput transfer.InitiateInput
	result    *transfer.InitiateResult
	err       error
}

func (f *fakeInitiator) Initiate(_ context.Context, input transfer.InitiateInput) (*transfer.InitiateResult, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func performInitiate(t *testing.T, service *fakeInitiator, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	h := NewTransferHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/v1/transfers/initiate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Initiate(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestInitiateRejectsMissingRequiredFields(t *testing.T) {
	service := &fakeInitiator{}

	cases := []struct {
		name string
		body string
	}{
		{"no callId", `{"agentAId": "agent-A"}`},
		{"no agentAId", `{"callId": "call-1"}`},
		{"empty body", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performInitiate(t, service, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var resp map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad response body: %v", err)
			}
			if resp["code"] != "INVALID_ARGUMENT" {
				t.Fatalf("expected INVALID_ARGUMENT code, got %v", resp["code"])
			}
		})
	}

	if service.lastInput.CallID != "" {
		t.Fatal("service must not be called on validation failure")
	}
}

func TestInitiateRejectsMalformedJSON(t *testing.T) {
	rec := performInitiate(t, &fakeInitiator{}, `{"callId": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInitiateReturnsCreatedWithTokens(t *testing.T) {
	service := &fakeInitiator{
		result: &transfer.InitiateResult{
			TransferID:   "xfer-1",
			TransferRoom: "transfer-room-1",
			SummaryID:    "sum-1",
			TokenA:       "jwt-a",
			TokenB:       "jwt-b",
			SummaryText:  "- caller wants a refund",
		},
	}

	rec := performInitiate(t, service, `{
		"callId": "call-1",
		"agentAId": "agent-A",
		"agentBId": "agent-B",
		"transcriptText": "Customer wants a refund."
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if service.lastInput.CallID != "call-1" ||
		service.lastInput.FromAgentID != "agent-A" ||
		service.lastInput.ToAgentID != "agent-B" ||
		service.lastInput.TranscriptText != "Customer wants a refund." {
		t.Fatalf("request not mapped onto service input: %+v", service.lastInput)
	}

	var resp struct {
		OK       bool `json:"ok"`
		Transfer struct {
			TransferID   string `json:"transferId"`
			TransferRoom string `json:"transferRoom"`
			SummaryID    string `json:"summaryId"`
		} `json:"transfer"`
		Tokens struct {
			TokenA string `json:"tokenA"`
			TokenB string `json:"tokenB"`
		} `json:"tokens"`
		SummaryText string `json:"summaryText"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.OK {
		t.Fatal("expected ok=true")
	}
	if resp.Transfer.TransferID != "xfer-1" || resp.Transfer.TransferRoom != "transfer-room-1" {
		t.Fatalf("unexpected transfer info: %+v", resp.Transfer)
	}
	if resp.Tokens.TokenA != "jwt-a" || resp.Tokens.TokenB != "jwt-b" {
		t.Fatalf("unexpected tokens: %+v", resp.Tokens)
	}
	if resp.SummaryText != "- caller wants a refund" {
		t.Fatalf("unexpected summary text: %q", resp.SummaryText)
	}
}

func TestInitiateMapsProviderFailureTo500(t *testing.T) {
	service := &fakeInitiator{
		err: apperrors.ErrProviderUnavailable("room provider", "ensure-room", context.DeadlineExceeded),
	}

	rec := performInitiate(t, service, `{"callId": "call-1", "agentAId": "agent-A"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Code != "PROVIDER_UNAVAILABLE" {
		t.Fatalf("expected PROVIDER_UNAVAILABLE, got %q", resp.Code)
	}
	if resp.Details["step"] != "ensure-room" {
		t.Fatalf("expected failing step in details, got %v", resp.Details)
	}
}

func TestInitiateMapsUnknownErrorTo500(t *testing.T) {
	service := &fakeInitiator{err: context.Canceled}

	rec := performInitiate(t, service, `{"callId": "call-1", "agentAId": "agent-A"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
