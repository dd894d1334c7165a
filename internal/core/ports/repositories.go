package ports

import (
	"context"
	"time"

	"payx-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DBTransactor is the sole component permitted to open database
// transactions (§4.3).
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BusinessRepository persists Business tenants.
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetByEmail(ctx context.Context, email string) (*domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
}

// CredentialRepository persists API credentials and resolves candidates by
// their lookup prefix.
type CredentialRepository interface {
	Create(ctx context.Context, c *domain.Credential) error
	// FindByPrefix returns at most one non-revoked candidate credential
	// matching the given prefix, or nil if none exists.
	FindByPrefix(ctx context.Context, prefix string) (*domain.Credential, error)
	// TouchLastUsed updates last_used_at best-effort; callers dispatch this
	// asynchronously and ignore its error.
	TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error
}

// AccountRepository is the Ledger Store's account-facing capability list
// (§4.3). Lock* methods must be called with a transaction obtained from
// DBTransactor and held for the critical section's duration.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor string, limit int) ([]domain.Account, string, error)
	// LockAccount acquires an exclusive row lock and returns the current
	// row, or (nil, nil) if it does not exist.
	LockAccount(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	// UpdateBalance persists new balance/available_balance under the held
	// lock and returns the new version.
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance, available string) (int64, error)
}

// ErrIdempotencyKeyConflict is returned by InsertTransaction when the
// partial unique index on (business_id, idempotency_key) fires.
var ErrIdempotencyKeyConflict = errIdempotencyKeyConflict{}

type errIdempotencyKeyConflict struct{}

func (errIdempotencyKeyConflict) Error() string { return "idempotency key already used" }

// TransactionRepository is the Ledger Store's transaction-facing capability
// list.
type TransactionRepository interface {
	// InsertTransaction inserts the completed transaction row within tx. On
	// a (business_id, idempotency_key) collision it returns
	// ErrIdempotencyKeyConflict so the caller can take the replay path.
	InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	InsertLedgerEntry(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// FindByIdempotencyKey probes the authoritative partial unique index;
	// used both by the advisory replay short-circuit and by the race
	// recovery path after an insert conflict.
	FindByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, cursor string, limit int) ([]domain.Transaction, string, error)
}

// OutboxRepository is the Ledger Store's outbox-facing capability list,
// shared by the Transaction Engine (insert) and the Webhook Worker (claim).
type OutboxRepository interface {
	InsertOutbox(ctx context.Context, tx pgx.Tx, e *domain.OutboxEvent) error
	// ClaimBatch returns up to limit rows eligible for delivery, locked
	// with FOR UPDATE SKIP LOCKED so concurrent workers never collide.
	ClaimBatch(ctx context.Context, tx pgx.Tx, limit int, now time.Time) ([]domain.OutboxEvent, error)
	MarkDelivered(ctx context.Context, tx pgx.Tx, id uuid.UUID, processedAt time.Time) error
	MarkRetrying(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastErr string) error
	MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, lastErr string) error
	ListDeliveries(ctx context.Context, businessID uuid.UUID, status string, offset, limit int) ([]domain.OutboxEvent, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboxEvent, error)
	// Rearm resets a failed row back to pending for redelivery, per the
	// operator surface in §4.6.
	Rearm(ctx context.Context, id uuid.UUID, delay time.Duration) error
}

// RateWindowRepository implements the Postgres-backed fixed-window rate
// gate (§4.2 step 5, §3's Rate Window entity).
type RateWindowRepository interface {
	// CheckAndIncrement upserts (credential_id, window_start) and returns
	// the post-increment request count.
	CheckAndIncrement(ctx context.Context, credentialID uuid.UUID, windowStart time.Time) (int, error)
}

// AuditRepository persists the ambient audit trail.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
