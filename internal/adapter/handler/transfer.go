package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/calldesk/callcenter-backend/errors"
	"github.com/calldesk/callcenter-backend/internal/adapter/dto/common"
	transferdto "github.com/calldesk/callcenter-backend/internal/adapter/dto/transfer"
	"github.com/calldesk/callcenter-backend/internal/usecase/transfer"
)

// TransferInitiator is the slice of the transfer service the handler needs.
type TransferInitiator interface {
	Initiate(ctx context.Context, input transfer.InitiateInput) (*transfer.InitiateResult, error)
}

// TransferHandler exposes the warm-transfer workflow over HTTP.
type TransferHandler struct {
	service TransferInitiator
	logger  *zap.Logger
}

// NewTransferHandler creates a transfer handler.
func NewTransferHandler(service TransferInitiator, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{service: service, logger: logger}
}

// Initiate handles POST /v1/transfers/initiate.
func (h *TransferHandler) Initiate(c echo.Context) error {
	var req transferdto.InitiateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "invalid request body",
			Code:  apperrors.ErrorCode_INVALID_ARGUMENT.String(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "callId and agentAId are required",
			Code:  apperrors.ErrorCode_INVALID_ARGUMENT.String(),
		})
	}

	result, err := h.service.Initiate(c.Request().Context(), transfer.InitiateInput{
		CallID:         req.CallID,
		FromAgentID:    req.AgentAID,
		ToAgentID:      req.AgentBID,
		ToAgentPhone:   req.ToAgentPhone,
		TranscriptText: req.TranscriptText,
	})
	if err != nil {
		h.logger.Error("transfer initiate failed",
			zap.String("callId", req.CallID),
			zap.Error(err),
		)
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.ErrInternal(err)
		}
		return c.JSON(appErr.HTTPCode, common.ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code.String(),
			Details: appErr.Details,
		})
	}

	return c.JSON(http.StatusCreated, transferdto.InitiateResponse{
		OK: true,
		Transfer: transferdto.TransferInfo{
			TransferID:   result.TransferID,
			TransferRoom: result.TransferRoom,
			SummaryID:    result.SummaryID,
		},
		Tokens: transferdto.Tokens{
			TokenA: result.TokenA,
			TokenB: result.TokenB,
		},
		SummaryText: result.SummaryText,
	})
}
