package domain

import (
	"time"

	"github.com/google/uuid"
)

// Business is the top-level tenant owning credentials, accounts, and webhook
// configuration. Hard delete is disallowed while it is referenced by any
// other entity.
type Business struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	WebhookURL    *string   `json:"webhook_url,omitempty"`
	WebhookSecret string    `json:"-"` // returned once at creation, never again
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasWebhook reports whether the business has configured a delivery target.
func (b *Business) HasWebhook() bool {
	return b.WebhookURL != nil && *b.WebhookURL != ""
}
