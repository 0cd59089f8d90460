package entities

import (
	"encoding/json"
	"time"
)

// TransferStatus tracks a transfer attempt through its lifecycle. This
// service only writes "initiated"; later stages advance the status.
type TransferStatus = string

const (
	TransferStatusInitiated TransferStatus = "initiated"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
)

// TargetKind discriminates the destination of a transfer.
type TargetKind string

const (
	TargetKindAgent      TargetKind = "agent"
	TargetKindPhone      TargetKind = "phone"
	TargetKindUnassigned TargetKind = "unassigned"
)

// TransferTarget is the destination of a warm transfer: a known agent, a
// raw phone number, or nobody yet.
type TransferTarget struct {
	Kind  TargetKind
	Value string
}

// AgentTarget returns a target referencing a known agent.
func AgentTarget(agentID string) TransferTarget {
	return TransferTarget{Kind: TargetKindAgent, Value: agentID}
}

// PhoneTarget returns a target addressed by phone number.
func PhoneTarget(phone string) TransferTarget {
	return TransferTarget{Kind: TargetKindPhone, Value: phone}
}

// UnassignedTarget returns the "nobody yet" target.
func UnassignedTarget() TransferTarget {
	return TransferTarget{Kind: TargetKindUnassigned}
}

// IsAssigned reports whether the target names a concrete destination.
func (t TransferTarget) IsAssigned() bool {
	return t.Kind == TargetKindAgent || t.Kind == TargetKindPhone
}

// MarshalJSON renders the target the way API consumers expect: the agent id
// or phone number string, or null when unassigned.
func (t TransferTarget) MarshalJSON() ([]byte, error) {
	if !t.IsAssigned() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// UnmarshalJSON accepts the string-or-null wire form. A bare string is
// ambiguous between agent id and phone number, so it is kept as an agent
// reference; storage round-trips preserve the kind separately.
func (t *TransferTarget) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil || *v == "" {
		*t = UnassignedTarget()
		return nil
	}
	*t = AgentTarget(*v)
	return nil
}

// Transfer records one warm-transfer attempt for a call.
type Transfer struct {
	TransferID     string         `json:"transferId"`
	CallID         string         `json:"callId"`
	FromAgentID    string         `json:"fromAgentId"`
	ToAgent        TransferTarget `json:"toAgent"`
	TransferRoom   string         `json:"transferRoom"`
	SummaryID      string         `json:"summaryId,omitempty"`
	Status         TransferStatus `json:"status"`
	TranscriptHint string         `json:"transcriptHint,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// TransferPatch lists the Transfer fields that are mutable after creation.
type TransferPatch struct {
	Status *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p TransferPatch) IsEmpty() bool {
	return p.Status == nil
}
