package entities

import "time"

// Agent represents a call-center agent.
type Agent struct {
	AgentID     string            `json:"agentId"`
	Name        string            `json:"name"`
	PhoneNumber string            `json:"phoneNumber,omitempty"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"createdAt"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// AgentPatch lists the Agent fields that are mutable after creation.
type AgentPatch struct {
	Name        *string
	PhoneNumber *string
	Active      *bool
}

// IsEmpty reports whether the patch carries no field at all.
func (p AgentPatch) IsEmpty() bool {
	return p.Name == nil && p.PhoneNumber == nil && p.Active == nil
}
