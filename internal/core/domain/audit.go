package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateBusiness    AuditAction = "CREATE_BUSINESS"
	AuditActionUpdateBusiness    AuditAction = "UPDATE_BUSINESS"
	AuditActionCreateAccount     AuditAction = "CREATE_ACCOUNT"
	AuditActionSubmitTransaction AuditAction = "SUBMIT_TRANSACTION"
	AuditActionConfigureWebhook  AuditAction = "CONFIGURE_WEBHOOK"
	AuditActionRetryWebhook      AuditAction = "RETRY_WEBHOOK"
)

// AuditLog records a single audited mutating action, scoped to a business.
// This is an ambient addition carried from the teacher's per-merchant audit
// trail, generalized from merchant-only actions to every mutating endpoint.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	BusinessID   *uuid.UUID  `json:"business_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
