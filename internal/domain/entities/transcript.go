package entities

import "time"

// Transcript is a captured piece of conversation text for a call.
type Transcript struct {
	TranscriptID string            `json:"transcriptId"`
	CallID       string            `json:"callId"`
	Text         string            `json:"text"`
	Source       string            `json:"source"`
	CreatedAt    time.Time         `json:"createdAt"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// TranscriptPatch lists the Transcript fields that are mutable after
// creation.
type TranscriptPatch struct {
	Metadata map[string]string
}

// IsEmpty reports whether the patch carries no field at all.
func (p TranscriptPatch) IsEmpty() bool {
	return p.Metadata == nil
}
