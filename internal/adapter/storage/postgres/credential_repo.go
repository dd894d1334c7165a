package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payx-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CredentialRepo implements ports.CredentialRepository.
type CredentialRepo struct {
	pool Pool
}

// NewCredentialRepo creates a new CredentialRepo.
func NewCredentialRepo(pool Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

// Create inserts a new credential into the database.
func (r *CredentialRepo) Create(ctx context.Context, c *domain.Credential) error {
	query := `INSERT INTO credentials (id, business_id, key_hash, key_prefix, rate_limit_per_minute, expires_at, revoked_at, last_used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.BusinessID, c.KeyHash, c.KeyPrefix, c.RateLimitPerMinute,
		c.ExpiresAt, c.RevokedAt, c.LastUsedAt, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// FindByPrefix returns the non-revoked credential matching the lookup
// prefix, relying on the partial index over key_prefix to keep this a
// point lookup regardless of how many credentials a business accumulates.
func (r *CredentialRepo) FindByPrefix(ctx context.Context, prefix string) (*domain.Credential, error) {
	query := `SELECT id, business_id, key_hash, key_prefix, rate_limit_per_minute, expires_at, revoked_at, last_used_at, created_at
		FROM credentials WHERE key_prefix = $1 AND revoked_at IS NULL`

	c := &domain.Credential{}
	err := r.pool.QueryRow(ctx, query, prefix).Scan(
		&c.ID, &c.BusinessID, &c.KeyHash, &c.KeyPrefix, &c.RateLimitPerMinute,
		&c.ExpiresAt, &c.RevokedAt, &c.LastUsedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find credential by prefix: %w", err)
	}
	return c, nil
}

// TouchLastUsed updates last_used_at. Called off the request path; a
// missing row is not an error worth surfacing to the best-effort caller.
func (r *CredentialRepo) TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE credentials SET last_used_at = $1 WHERE id = $2`

	_, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("touch credential last_used_at: %w", err)
	}
	return nil
}
