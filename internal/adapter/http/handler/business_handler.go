package handler

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"payx-ledger/internal/adapter/http/dto"
	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"
	"payx-ledger/internal/service"
	"payx-ledger/pkg/apperror"
	"payx-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BusinessHandler handles tenant onboarding and profile endpoints.
type BusinessHandler struct {
	businessRepo   ports.BusinessRepository
	credentialRepo ports.CredentialRepository
	hashSvc        ports.HashService
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessRepo ports.BusinessRepository, credentialRepo ports.CredentialRepository, hashSvc ports.HashService) *BusinessHandler {
	return &BusinessHandler{businessRepo: businessRepo, credentialRepo: credentialRepo, hashSvc: hashSvc}
}

// CreateBusiness handles POST /v1/businesses.
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	now := time.Now().UTC()
	webhookSecret, err := generateWebhookSecret()
	if err != nil {
		response.Error(c, apperror.ErrInternal(err))
		return
	}

	business := &domain.Business{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		WebhookURL:    req.WebhookURL,
		WebhookSecret: webhookSecret,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.businessRepo.Create(c.Request.Context(), business); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	rawCredential, prefix, err := service.GenerateCredential()
	if err != nil {
		response.Error(c, apperror.ErrInternal(err))
		return
	}
	hash, err := h.hashSvc.Hash(rawCredential)
	if err != nil {
		response.Error(c, apperror.ErrInternal(err))
		return
	}
	credential := &domain.Credential{
		ID:                 uuid.New(),
		BusinessID:         business.ID,
		KeyHash:            hash,
		KeyPrefix:          prefix,
		RateLimitPerMinute: domain.DefaultRateLimitPerMinute,
		CreatedAt:          now,
	}
	if err := h.credentialRepo.Create(c.Request.Context(), credential); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	response.Created(c, toBusinessResponse(business, rawCredential))
}

// GetBusiness handles GET /v1/businesses/{id}.
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid business id"))
		return
	}

	business, err := h.businessRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}
	if business == nil {
		response.Error(c, apperror.ErrBusinessNotFound())
		return
	}

	response.OK(c, toBusinessResponse(business, ""))
}

// UpdateBusiness handles PUT /v1/businesses/{id}.
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid business id"))
		return
	}

	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	business, err := h.businessRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}
	if business == nil {
		response.Error(c, apperror.ErrBusinessNotFound())
		return
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.WebhookURL != nil {
		business.WebhookURL = req.WebhookURL
	}
	business.UpdatedAt = time.Now().UTC()

	if err := h.businessRepo.Update(c.Request.Context(), business); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	response.OK(c, toBusinessResponse(business, ""))
}

func toBusinessResponse(b *domain.Business, rawCredential string) dto.BusinessResponse {
	resp := dto.BusinessResponse{
		ID:         b.ID.String(),
		Name:       b.Name,
		Email:      b.Email,
		WebhookURL: b.WebhookURL,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  b.UpdatedAt.Format(time.RFC3339),
	}
	if rawCredential != "" {
		resp.Credential = rawCredential
		resp.WebhookSecret = b.WebhookSecret
	}
	return resp
}

func generateWebhookSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
