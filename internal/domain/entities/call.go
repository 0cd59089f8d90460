package entities

import "time"

// CallStatus is an open-ended status string; the constants below are the
// values this service itself writes.
type CallStatus = string

const (
	CallStatusActive       CallStatus = "active"
	CallStatusTransferring CallStatus = "transferring"
	CallStatusTransferred  CallStatus = "transferred"
	CallStatusEnded        CallStatus = "ended"
)

// Call represents an in-progress or finished call session.
type Call struct {
	CallID           string            `json:"callId"`
	CallerID         string            `json:"callerId,omitempty"`
	AgentAID         string            `json:"agentAId,omitempty"`
	Status           CallStatus        `json:"status"`
	LatestTranscript string            `json:"latestTranscript,omitempty"`
	LastSummaryID    string            `json:"lastSummaryId,omitempty"`
	TransferID       string            `json:"transferId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// CallPatch lists the Call fields that are mutable after creation. A nil
// field is left untouched.
type CallPatch struct {
	Status           *string
	LatestTranscript *string
	LastSummaryID    *string
	TransferID       *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p CallPatch) IsEmpty() bool {
	return p.Status == nil && p.LatestTranscript == nil && p.LastSummaryID == nil && p.TransferID == nil
}
