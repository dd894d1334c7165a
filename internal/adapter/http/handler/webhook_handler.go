package handler

import (
	"strconv"
	"time"

	"payx-ledger/internal/adapter/http/dto"
	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"
	"payx-ledger/pkg/apperror"
	"payx-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultDeliveryLimit = 20
	maxDeliveryLimit     = 100
	retryDelay           = time.Minute
)

// WebhookHandler handles webhook endpoint configuration and delivery
// inspection/retry for the transactional outbox.
type WebhookHandler struct {
	businessRepo ports.BusinessRepository
	outboxRepo   ports.OutboxRepository
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(businessRepo ports.BusinessRepository, outboxRepo ports.OutboxRepository) *WebhookHandler {
	return &WebhookHandler{businessRepo: businessRepo, outboxRepo: outboxRepo}
}

// CreateEndpoint handles POST /v1/webhooks/endpoints. The endpoint is a
// singleton per tenant; creating one when it already exists is rejected in
// favor of UpdateEndpoint.
func (h *WebhookHandler) CreateEndpoint(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return
	}

	var req dto.ConfigureWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	business, err := h.businessRepo.GetByID(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}
	if business == nil {
		response.Error(c, apperror.ErrBusinessNotFound())
		return
	}
	if business.HasWebhook() {
		response.Error(c, apperror.ErrValidation("webhook endpoint already configured; use PUT to update it"))
		return
	}

	business.WebhookURL = &req.WebhookURL
	business.UpdatedAt = time.Now().UTC()
	if err := h.businessRepo.Update(c.Request.Context(), business); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	response.Created(c, dto.WebhookEndpointResponse{
		BusinessID: business.ID.String(),
		WebhookURL: req.WebhookURL,
	})
}

// UpdateEndpoint handles PUT /v1/webhooks/endpoints/:id. :id addresses the
// owning tenant, the same convention /v1/businesses/:id uses, since a
// tenant has exactly one webhook endpoint.
func (h *WebhookHandler) UpdateEndpoint(c *gin.Context) {
	business, ok := h.loadOwnEndpoint(c)
	if !ok {
		return
	}

	var req dto.ConfigureWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	business.WebhookURL = &req.WebhookURL
	business.UpdatedAt = time.Now().UTC()
	if err := h.businessRepo.Update(c.Request.Context(), business); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	response.OK(c, dto.WebhookEndpointResponse{
		BusinessID: business.ID.String(),
		WebhookURL: req.WebhookURL,
	})
}

// DeleteEndpoint handles DELETE /v1/webhooks/endpoints/:id, clearing the
// tenant's delivery target. Already-queued outbox rows are left to the
// worker, which treats an unset webhook URL as a no-op delivery.
func (h *WebhookHandler) DeleteEndpoint(c *gin.Context) {
	business, ok := h.loadOwnEndpoint(c)
	if !ok {
		return
	}

	business.WebhookURL = nil
	business.UpdatedAt = time.Now().UTC()
	if err := h.businessRepo.Update(c.Request.Context(), business); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	response.NoContent(c)
}

// loadOwnEndpoint resolves the path id to the caller's own business,
// writing an error response and returning ok=false on any mismatch.
func (h *WebhookHandler) loadOwnEndpoint(c *gin.Context) (*domain.Business, bool) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id != businessID {
		response.Error(c, apperror.ErrBusinessNotFound())
		return nil, false
	}

	business, err := h.businessRepo.GetByID(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return nil, false
	}
	if business == nil {
		response.Error(c, apperror.ErrBusinessNotFound())
		return nil, false
	}
	return business, true
}

// ListDeliveries handles GET /v1/webhooks/deliveries.
func (h *WebhookHandler) ListDeliveries(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return
	}

	status := c.Query("status")
	limit := parseBoundedInt(c.Query("limit"), defaultDeliveryLimit, maxDeliveryLimit)
	offset := parseBoundedInt(c.Query("offset"), 0, 0)

	deliveries, total, err := h.outboxRepo.ListDeliveries(c.Request.Context(), businessID, status, offset, limit)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	items := make([]dto.WebhookDeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		items = append(items, toDeliveryResponse(&deliveries[i]))
	}

	response.OK(c, dto.WebhookDeliveryListResponse{Items: items, Total: total})
}

// RetryDelivery handles POST /v1/webhooks/deliveries/{id}/retry. It only
// rearms rows that have reached the terminal failed state; pending or
// retrying rows are already scheduled for redelivery by the worker.
func (h *WebhookHandler) RetryDelivery(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("invalid delivery id"))
		return
	}

	delivery, err := h.outboxRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}
	if delivery == nil || delivery.BusinessID != businessID {
		response.Error(c, apperror.ErrWebhookDeliveryNotFound())
		return
	}
	if delivery.Status != domain.OutboxStatusFailed {
		response.Error(c, apperror.ErrValidation("only failed deliveries can be retried"))
		return
	}

	if err := h.outboxRepo.Rearm(c.Request.Context(), id, retryDelay); err != nil {
		response.Error(c, apperror.ErrDatabase(err))
		return
	}

	delivery.Status = domain.OutboxStatusPending
	delivery.NextAttemptAt = time.Now().Add(retryDelay)
	delivery.LastError = nil
	response.OK(c, toDeliveryResponse(delivery))
}

func toDeliveryResponse(e *domain.OutboxEvent) dto.WebhookDeliveryResponse {
	resp := dto.WebhookDeliveryResponse{
		ID:            e.ID.String(),
		EventType:     e.EventType,
		Status:        string(e.Status),
		Attempts:      e.Attempts,
		MaxAttempts:   e.MaxAttempts,
		NextAttemptAt: e.NextAttemptAt.Format(time.RFC3339),
		LastError:     e.LastError,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
	if e.ProcessedAt != nil {
		processed := e.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processed
	}
	return resp
}

func parseBoundedInt(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
