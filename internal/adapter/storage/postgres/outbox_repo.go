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

// OutboxRepo implements ports.OutboxRepository.
type OutboxRepo struct {
	pool Pool
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(pool Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

// InsertOutbox inserts an outbox row in the same transaction as the ledger
// change it describes.
func (r *OutboxRepo) InsertOutbox(ctx context.Context, tx pgx.Tx, e *domain.OutboxEvent) error {
	query := `INSERT INTO webhook_outbox
		(id, business_id, event_type, payload, status, attempts, max_attempts, next_attempt_at, last_error, processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.BusinessID, e.EventType, e.Payload, e.Status, e.Attempts, e.MaxAttempts,
		e.NextAttemptAt, e.LastError, e.ProcessedAt, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

// ClaimBatch locks up to limit deliverable rows with FOR UPDATE SKIP
// LOCKED so concurrent worker instances never contend for the same row.
func (r *OutboxRepo) ClaimBatch(ctx context.Context, tx pgx.Tx, limit int, now time.Time) ([]domain.OutboxEvent, error) {
	query := `SELECT id, business_id, event_type, payload, status, attempts, max_attempts, next_attempt_at, last_error, processed_at, created_at
		FROM webhook_outbox
		WHERE status IN ('pending', 'retrying') AND next_attempt_at <= $1
		ORDER BY next_attempt_at ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	rows, err := tx.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claim outbox batch: %w", err)
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		e := domain.OutboxEvent{}
		if err := rows.Scan(&e.ID, &e.BusinessID, &e.EventType, &e.Payload, &e.Status, &e.Attempts,
			&e.MaxAttempts, &e.NextAttemptAt, &e.LastError, &e.ProcessedAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return events, nil
}

// MarkDelivered records a successful delivery.
func (r *OutboxRepo) MarkDelivered(ctx context.Context, tx pgx.Tx, id uuid.UUID, processedAt time.Time) error {
	query := `UPDATE webhook_outbox SET status = 'delivered', processed_at = $1 WHERE id = $2`
	_, err := tx.Exec(ctx, query, processedAt, id)
	if err != nil {
		return fmt.Errorf("mark outbox delivered: %w", err)
	}
	return nil
}

// MarkRetrying records a failed attempt and reschedules it.
func (r *OutboxRepo) MarkRetrying(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastErr string) error {
	query := `UPDATE webhook_outbox SET status = 'retrying', attempts = $1, next_attempt_at = $2, last_error = $3 WHERE id = $4`
	_, err := tx.Exec(ctx, query, attempts, nextAttemptAt, lastErr, id)
	if err != nil {
		return fmt.Errorf("mark outbox retrying: %w", err)
	}
	return nil
}

// MarkFailed records terminal exhaustion of the retry budget.
func (r *OutboxRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, lastErr string) error {
	query := `UPDATE webhook_outbox SET status = 'failed', attempts = $1, last_error = $2 WHERE id = $3`
	_, err := tx.Exec(ctx, query, attempts, lastErr, id)
	if err != nil {
		return fmt.Errorf("mark outbox failed: %w", err)
	}
	return nil
}

// ListDeliveries returns a business's outbox rows, optionally filtered by
// status, newest first.
func (r *OutboxRepo) ListDeliveries(ctx context.Context, businessID uuid.UUID, status string, offset, limit int) ([]domain.OutboxEvent, int64, error) {
	var (
		rows pgx.Rows
		err  error
	)

	countQuery := `SELECT COUNT(*) FROM webhook_outbox WHERE business_id = $1`
	listQuery := `SELECT id, business_id, event_type, payload, status, attempts, max_attempts, next_attempt_at, last_error, processed_at, created_at
		FROM webhook_outbox WHERE business_id = $1`
	args := []any{businessID}

	if status != "" {
		countQuery += " AND status = $2"
		listQuery += " AND status = $2"
		args = append(args, status)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count outbox rows: %w", err)
	}

	listQuery += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)
	rows, err = r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list outbox rows: %w", err)
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		e := domain.OutboxEvent{}
		if err := rows.Scan(&e.ID, &e.BusinessID, &e.EventType, &e.Payload, &e.Status, &e.Attempts,
			&e.MaxAttempts, &e.NextAttemptAt, &e.LastError, &e.ProcessedAt, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return events, total, nil
}

// GetByID fetches a single outbox row, used by the retry endpoint.
func (r *OutboxRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboxEvent, error) {
	query := `SELECT id, business_id, event_type, payload, status, attempts, max_attempts, next_attempt_at, last_error, processed_at, created_at
		FROM webhook_outbox WHERE id = $1`

	e := &domain.OutboxEvent{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.BusinessID, &e.EventType, &e.Payload, &e.Status,
		&e.Attempts, &e.MaxAttempts, &e.NextAttemptAt, &e.LastError, &e.ProcessedAt, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbox event: %w", err)
	}
	return e, nil
}

// Rearm resets a failed row back to pending after delay, for the operator
// retry surface.
func (r *OutboxRepo) Rearm(ctx context.Context, id uuid.UUID, delay time.Duration) error {
	query := `UPDATE webhook_outbox SET status = 'pending', next_attempt_at = $1, last_error = NULL WHERE id = $2 AND status = 'failed'`

	tag, err := r.pool.Exec(ctx, query, time.Now().Add(delay), id)
	if err != nil {
		return fmt.Errorf("rearm outbox event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox event not failed or not found: %s", id)
	}
	return nil
}
