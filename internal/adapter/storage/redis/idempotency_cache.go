package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// IdempotencyCache implements ports.IdempotencyCache using Redis as an
// advisory fast path in front of the authoritative partial unique index on
// transactions(business_id, idempotency_key). A miss or cache error always falls back
// to the database; this cache is never the system of record.
type IdempotencyCache struct {
	client *goredis.Client
	prefix string
}

// NewIdempotencyCache creates a new Redis-backed idempotency cache.
func NewIdempotencyCache(client *goredis.Client) *IdempotencyCache {
	return &IdempotencyCache{
		client: client,
		prefix: "idempotency:",
	}
}

func (c *IdempotencyCache) cacheKey(businessID uuid.UUID, key string) string {
	return fmt.Sprintf("%s%s:%s", c.prefix, businessID, key)
}

// cacheEntry is the cache's own wire shape for a cached transaction. It
// mirrors domain.Transaction field-for-field but carries RequestFingerprint
// under a real JSON tag — domain.Transaction tags that field json:"-" so it
// never leaks into an HTTP response, but the cache needs it to round-trip so
// matchOrConflict can replay instead of false-conflicting on a warm hit.
type cacheEntry struct {
	ID                   uuid.UUID               `json:"id"`
	BusinessID           uuid.UUID               `json:"business_id"`
	IdempotencyKey       *string                 `json:"idempotency_key,omitempty"`
	RequestFingerprint   *string                 `json:"request_fingerprint,omitempty"`
	Type                 domain.TransactionType  `json:"type"`
	Status               domain.TransactionStatus `json:"status"`
	SourceAccountID      *uuid.UUID              `json:"source_account_id,omitempty"`
	DestinationAccountID *uuid.UUID              `json:"destination_account_id,omitempty"`
	Amount               decimal.Decimal         `json:"amount"`
	Currency             string                  `json:"currency"`
	CreatedAt            time.Time               `json:"created_at"`
	CompletedAt          *time.Time              `json:"completed_at,omitempty"`
}

func toCacheEntry(txn *domain.Transaction) cacheEntry {
	return cacheEntry{
		ID:                   txn.ID,
		BusinessID:           txn.BusinessID,
		IdempotencyKey:       txn.IdempotencyKey,
		RequestFingerprint:   txn.RequestFingerprint,
		Type:                 txn.Type,
		Status:               txn.Status,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Amount:               txn.Amount,
		Currency:             txn.Currency,
		CreatedAt:            txn.CreatedAt,
		CompletedAt:          txn.CompletedAt,
	}
}

func (e cacheEntry) toTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:                   e.ID,
		BusinessID:           e.BusinessID,
		IdempotencyKey:       e.IdempotencyKey,
		RequestFingerprint:   e.RequestFingerprint,
		Type:                 e.Type,
		Status:               e.Status,
		SourceAccountID:      e.SourceAccountID,
		DestinationAccountID: e.DestinationAccountID,
		Amount:               e.Amount,
		Currency:             e.Currency,
		CreatedAt:            e.CreatedAt,
		CompletedAt:          e.CompletedAt,
	}
}

// Get retrieves a cached transaction by (business, idempotency key).
// Returns (nil, false, nil) on a cache miss.
func (c *IdempotencyCache) Get(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, bool, error) {
	raw, err := c.client.Get(ctx, c.cacheKey(businessID, key)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis idempotency get: %w", err)
	}

	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cached transaction: %w", err)
	}
	return entry.toTransaction(), true, nil
}

// Set stores the completed transaction under its idempotency key with TTL.
func (c *IdempotencyCache) Set(ctx context.Context, businessID uuid.UUID, key string, txn *domain.Transaction, ttl time.Duration) error {
	raw, err := json.Marshal(toCacheEntry(txn))
	if err != nil {
		return fmt.Errorf("encode transaction for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.cacheKey(businessID, key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis idempotency set: %w", err)
	}
	return nil
}

var _ ports.IdempotencyCache = (*IdempotencyCache)(nil)
