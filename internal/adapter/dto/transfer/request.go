package transfer

// InitiateRequest is the body of POST /v1/transfers/initiate. Either
// agentBId or toAgentPhone may name the target; both may be absent.
type InitiateRequest struct {
	CallID         string `json:"callId" validate:"required"`
	AgentAID       string `json:"agentAId" validate:"required"`
	AgentBID       string `json:"agentBId,omitempty"`
	TranscriptText string `json:"transcriptText,omitempty"`
	ToAgentPhone   string `json:"toAgentPhone,omitempty"`
}
