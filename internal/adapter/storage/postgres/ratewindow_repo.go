package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RateWindowRepo implements ports.RateWindowRepository: a Postgres-backed
// fixed-window counter, upserted once per request under a credential.
type RateWindowRepo struct {
	pool Pool
}

// NewRateWindowRepo creates a new RateWindowRepo.
func NewRateWindowRepo(pool Pool) *RateWindowRepo {
	return &RateWindowRepo{pool: pool}
}

// CheckAndIncrement upserts the (credential_id, window_start) counter and
// returns the post-increment count, all in a single round trip.
func (r *RateWindowRepo) CheckAndIncrement(ctx context.Context, credentialID uuid.UUID, windowStart time.Time) (int, error) {
	query := `INSERT INTO rate_windows (credential_id, window_start, request_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (credential_id, window_start)
		DO UPDATE SET request_count = rate_windows.request_count + 1
		RETURNING request_count`

	var count int
	if err := r.pool.QueryRow(ctx, query, credentialID, windowStart).Scan(&count); err != nil {
		return 0, fmt.Errorf("upsert rate window: %w", err)
	}
	return count, nil
}
