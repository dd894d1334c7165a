package ports

import (
	"context"
	"time"

	"payx-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// HashService produces and verifies memory-hard credential hashes.
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) (bool, error)
}

// SignatureService signs outbound payloads with HMAC-SHA256 and verifies
// inbound ones in constant time. Kept from the teacher's request-signing
// core and repurposed for webhook egress (§4.6).
type SignatureService interface {
	Sign(payload []byte, secret string) string
	Verify(payload []byte, secret, signature string) bool
}

// IdempotencyCache is the advisory Redis fast-path in front of the
// authoritative partial unique index (§4.5). A cache miss or cache failure
// always falls through to the database; the cache is never the system of
// record.
type IdempotencyCache interface {
	Get(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, bool, error)
	Set(ctx context.Context, businessID uuid.UUID, key string, txn *domain.Transaction, ttl time.Duration) error
}

// SubmitRequest is the Transaction Engine's single tagged-variant submit
// operation input (§4.4).
type SubmitRequest struct {
	BusinessID           uuid.UUID
	IdempotencyKey       *string
	Type                 domain.TransactionType
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	Amount               string
	Currency             string
}

// TransactionEngine implements the Transaction Engine component (§4.4):
// preflight validation, deadlock-free multi-account locking, idempotent
// replay, and the single critical-section database transaction that posts
// ledger entries and enqueues the outbox event.
type TransactionEngine interface {
	Submit(ctx context.Context, req SubmitRequest) (*domain.Transaction, error)
}

// AuthResult is the outcome of a successful credential resolution, carrying
// everything downstream handlers need without a second database round trip.
type AuthResult struct {
	Credential *domain.Credential
	Business   *domain.Business
}

// AuthGateService implements the Authentication & Rate Gate component
// (§4.2): bearer credential resolution against the prefix index, memory-hard
// verification, and the fixed-window rate check.
type AuthGateService interface {
	// Authenticate resolves a raw "payx_..." bearer credential to its
	// owning business, or an *apperror.AppError with code invalid_api_key.
	Authenticate(ctx context.Context, rawKey string) (*AuthResult, error)
	// CheckRateLimit increments and evaluates the current 1-minute window
	// for the given credential, returning an apperror with code
	// rate_limit_exceeded when the limit is breached.
	CheckRateLimit(ctx context.Context, credential *domain.Credential, now time.Time) error
}

// WebhookDispatcher delivers a single outbox event over HTTP and reports
// the outcome; used by the Webhook Worker's drain loop (§4.6).
type WebhookDispatcher interface {
	Deliver(ctx context.Context, event *domain.OutboxEvent, targetURL, secret string) error
}
