package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the tagged-variant discriminator for submit requests;
// field presence (source/destination) is the discriminator at validation
// time, not a type hierarchy.
type TransactionType string

const (
	TransactionTypeCredit   TransactionType = "credit"
	TransactionTypeDebit    TransactionType = "debit"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionStatus is the lifecycle state of a Transaction row.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is the immutable record of a single money movement, created
// once its ledger entries and outbox event have been durably written in the
// same database transaction.
type Transaction struct {
	ID                   uuid.UUID         `json:"id"`
	BusinessID           uuid.UUID         `json:"business_id"`
	IdempotencyKey       *string           `json:"idempotency_key,omitempty"`
	RequestFingerprint   *string           `json:"-"`
	Type                 TransactionType   `json:"type"`
	Status               TransactionStatus `json:"status"`
	SourceAccountID      *uuid.UUID        `json:"source_account_id,omitempty"`
	DestinationAccountID *uuid.UUID        `json:"destination_account_id,omitempty"`
	Amount               decimal.Decimal   `json:"amount"`
	Currency             string            `json:"currency"`
	CreatedAt            time.Time         `json:"created_at"`
	CompletedAt          *time.Time        `json:"completed_at,omitempty"`
}

// IsTerminal reports whether the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}

// LockSet returns the distinct, sorted account ids that must be locked to
// process this request, per §4.4's deadlock-free lock ordering.
func (t *Transaction) LockSet() []uuid.UUID {
	var ids []uuid.UUID
	switch t.Type {
	case TransactionTypeCredit:
		ids = []uuid.UUID{*t.DestinationAccountID}
	case TransactionTypeDebit:
		ids = []uuid.UUID{*t.SourceAccountID}
	case TransactionTypeTransfer:
		ids = []uuid.UUID{*t.SourceAccountID, *t.DestinationAccountID}
	}
	SortUUIDs(ids)
	return ids
}
