package handler

import (
	"time"

	"payx-ledger/internal/adapter/http/dto"
	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"
	"payx-ledger/pkg/apperror"
	"payx-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles the core ledger write/read endpoints.
type TransactionHandler struct {
	engine ports.TransactionEngine
	txRepo ports.TransactionRepository
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(engine ports.TransactionEngine, txRepo ports.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{engine: engine, txRepo: txRepo}
}

// SubmitTransaction handles POST /v1/transactions. The Idempotency-Key
// header, when present, is threaded through to the Transaction Engine's
// replay short-circuit.
func (h *TransactionHandler) SubmitTransaction(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return
	}

	var req dto.SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	sourceID, err := parseOptionalUUID(req.SourceAccountID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid source_account_id"))
		return
	}
	destID, err := parseOptionalUUID(req.DestinationAccountID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid destination_account_id"))
		return
	}

	submitReq := ports.SubmitRequest{
		BusinessID:           businessID,
		Type:                 domain.TransactionType(req.Type),
		SourceAccountID:      sourceID,
		DestinationAccountID: destID,
		Amount:               req.Amount,
		Currency:             req.Currency,
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		submitReq.IdempotencyKey = &key
	}

	submittedAt := time.Now()
	txn, err := h.engine.Submit(c.Request.Context(), submitReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A replayed transaction carries the winning request's original
	// completion time; a freshly posted one completes after submittedAt.
	if txn.CompletedAt != nil && txn.CompletedAt.Before(submittedAt) {
		response.OK(c, toTransactionResponse(txn))
		return
	}
	response.Created(c, toTransactionResponse(txn))
}

// GetTransaction handles GET /v1/transactions/{id}.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid transaction id"))
		return
	}

	txn, err := h.txRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}
	businessID, ok := businessIDFromContext(c)
	if txn == nil || !ok || txn.BusinessID != businessID {
		response.Error(c, apperror.ErrTransactionNotFound())
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

func toTransactionResponse(t *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:             t.ID.String(),
		BusinessID:     t.BusinessID.String(),
		IdempotencyKey: t.IdempotencyKey,
		Type:           string(t.Type),
		Status:         string(t.Status),
		Amount:         t.Amount.StringFixed(4),
		Currency:       t.Currency,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
	}
	if t.SourceAccountID != nil {
		s := t.SourceAccountID.String()
		resp.SourceAccountID = &s
	}
	if t.DestinationAccountID != nil {
		d := t.DestinationAccountID.String()
		resp.DestinationAccountID = &d
	}
	if t.CompletedAt != nil {
		completed := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
