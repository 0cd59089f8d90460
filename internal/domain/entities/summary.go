package entities

import "time"

// Summary holds the generated handoff summary for one summarization event.
// Summaries are written once and never altered afterwards, except for their
// free-form metadata.
type Summary struct {
	SummaryID   string            `json:"summaryId"`
	CallID      string            `json:"callId"`
	SummaryText string            `json:"summaryText"`
	Model       string            `json:"model"`
	CreatedAt   time.Time         `json:"createdAt"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// SummaryPatch lists the Summary fields that are mutable after creation.
// A nil Metadata leaves the stored metadata untouched.
type SummaryPatch struct {
	Metadata map[string]string
}

// IsEmpty reports whether the patch carries no field at all.
func (p SummaryPatch) IsEmpty() bool {
	return p.Metadata == nil
}
