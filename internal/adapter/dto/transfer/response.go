package transfer

// TransferInfo identifies the records created for a transfer.
type TransferInfo struct {
	TransferID   string `json:"transferId"`
	TransferRoom string `json:"transferRoom"`
	SummaryID    string `json:"summaryId"`
}

// Tokens carries the two join tokens for the transfer room.
type Tokens struct {
	TokenA string `json:"tokenA"`
	TokenB string `json:"tokenB"`
}

// InitiateResponse is the success body of POST /v1/transfers/initiate.
type InitiateResponse struct {
	OK          bool         `json:"ok"`
	Transfer    TransferInfo `json:"transfer"`
	Tokens      Tokens       `json:"tokens"`
	SummaryText string       `json:"summaryText"`
}
