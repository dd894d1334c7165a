package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the delivery lifecycle state of an OutboxEvent row.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusRetrying  OutboxStatus = "retrying"
	OutboxStatusDelivered OutboxStatus = "delivered"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// EventTypeTransactionCompleted is the only event type the core engine
// emits today (I5).
const EventTypeTransactionCompleted = "transaction.completed"

// OutboxEvent is a durable row recorded in the same database transaction as
// the ledger change it describes, later delivered to the tenant's
// webhook_url by the background worker.
type OutboxEvent struct {
	ID            uuid.UUID    `json:"id"`
	BusinessID    uuid.UUID    `json:"business_id"`
	EventType     string       `json:"event_type"`
	Payload       []byte       `json:"-"`
	Status        OutboxStatus `json:"status"`
	Attempts      int          `json:"attempts"`
	MaxAttempts   int          `json:"max_attempts"`
	NextAttemptAt time.Time    `json:"next_attempt_at"`
	LastError     *string      `json:"last_error,omitempty"`
	ProcessedAt   *time.Time   `json:"processed_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// IsTerminal reports whether the row has reached delivered or failed.
func (e *OutboxEvent) IsTerminal() bool {
	return e.Status == OutboxStatusDelivered || e.Status == OutboxStatusFailed
}
