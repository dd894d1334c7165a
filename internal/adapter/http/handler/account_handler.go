package handler

import (
	"strconv"
	"time"

	"payx-ledger/internal/adapter/http/dto"
	"payx-ledger/internal/adapter/http/middleware"
	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"
	"payx-ledger/pkg/apperror"
	"payx-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// AccountHandler handles ledger account endpoints.
type AccountHandler struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountRepo ports.AccountRepository, txRepo ports.TransactionRepository) *AccountHandler {
	return &AccountHandler{accountRepo: accountRepo, txRepo: txRepo}
}

// CreateAccount handles POST /v1/accounts.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	initial := decimal.Zero
	if req.InitialBalance != nil {
		parsed, err := decimal.NewFromString(*req.InitialBalance)
		if err != nil || parsed.Sign() < 0 {
			response.Error(c, apperror.ErrValidation("initial_balance must be a non-negative decimal"))
			return
		}
		initial = parsed
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:               uuid.New(),
		BusinessID:       businessID,
		Currency:         req.Currency,
		Balance:          initial,
		AvailableBalance: initial,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.accountRepo.Create(c.Request.Context(), account); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	response.Created(c, toAccountResponse(account))
}

// GetAccount handles GET /v1/accounts/{id}.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid account id"))
		return
	}

	account, err := h.accountRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}
	if account == nil || !ownsAccount(c, account) {
		response.Error(c, apperror.ErrAccountNotFound())
		return
	}

	response.OK(c, toAccountResponse(account))
}

// ListTransactions handles GET /v1/accounts/{id}/transactions.
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid account id"))
		return
	}

	account, err := h.accountRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}
	if account == nil || !ownsAccount(c, account) {
		response.Error(c, apperror.ErrAccountNotFound())
		return
	}

	limit := parseLimit(c.Query("limit"))
	cursor := c.Query("cursor")

	txns, nextCursor, err := h.txRepo.ListByAccount(c.Request.Context(), id, cursor, limit)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}

	response.OK(c, dto.TransactionListResponse{Items: items, NextCursor: nextCursor})
}

func toAccountResponse(a *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:               a.ID.String(),
		BusinessID:       a.BusinessID.String(),
		Currency:         a.Currency,
		Balance:          a.Balance.StringFixed(4),
		AvailableBalance: a.AvailableBalance.StringFixed(4),
		Version:          a.Version,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        a.UpdatedAt.Format(time.RFC3339),
	}
}

func businessIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.CtxBusinessID)
	if !exists {
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func ownsAccount(c *gin.Context, a *domain.Account) bool {
	businessID, ok := businessIDFromContext(c)
	return ok && businessID == a.BusinessID
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultPageLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultPageLimit
	}
	if n > maxPageLimit {
		return maxPageLimit
	}
	return n
}
