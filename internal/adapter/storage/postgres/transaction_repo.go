package postgres

import (
	"context"
	"errors"
	"fmt"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE pgx reports for a unique constraint
// violation.
const pgUniqueViolation = "23505"

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// InsertTransaction inserts the completed transaction row within tx. A
// collision on the partial unique index over (business_id,
// idempotency_key) surfaces as ports.ErrIdempotencyKeyConflict so the
// caller can fall back to the replay path instead of treating it as a
// generic database error.
func (r *TransactionRepo) InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions
		(id, business_id, idempotency_key, request_fingerprint, type, status,
		 source_account_id, destination_account_id, amount, currency, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.BusinessID, t.IdempotencyKey, t.RequestFingerprint, t.Type, t.Status,
		t.SourceAccountID, t.DestinationAccountID, t.Amount, t.Currency, t.CreatedAt, t.CompletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ports.ErrIdempotencyKeyConflict
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// InsertLedgerEntry inserts one double-entry posting within tx.
func (r *TransactionRepo) InsertLedgerEntry(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, transaction_id, account_id, entry_type, amount, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query, e.ID, e.TransactionID, e.AccountID, e.EntryType, e.Amount, e.BalanceAfter, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, business_id, idempotency_key, request_fingerprint, type, status,
		source_account_id, destination_account_id, amount, currency, created_at, completed_at
		FROM transactions WHERE id = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// FindByIdempotencyKey probes the authoritative partial unique index.
func (r *TransactionRepo) FindByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, error) {
	query := `SELECT id, business_id, idempotency_key, request_fingerprint, type, status,
		source_account_id, destination_account_id, amount, currency, created_at, completed_at
		FROM transactions WHERE business_id = $1 AND idempotency_key = $2`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, businessID, key))
}

// ListByAccount returns a page of transactions touching the given account,
// ordered by id descending and keyset-paginated on id. Ids are random
// UUIDs, so this order is not creation order.
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, cursor string, limit int) ([]domain.Transaction, string, error) {
	var afterID uuid.UUID
	if cursor != "" {
		decoded, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("decode cursor: %w", err)
		}
		afterID = decoded
	}

	query := `SELECT id, business_id, idempotency_key, request_fingerprint, type, status,
		source_account_id, destination_account_id, amount, currency, created_at, completed_at
		FROM transactions
		WHERE (source_account_id = $1 OR destination_account_id = $1) AND ($2 = '00000000-0000-0000-0000-000000000000' OR id < $2)
		ORDER BY id DESC LIMIT $3`

	rows, err := r.pool.Query(ctx, query, accountID, afterID, limit+1)
	if err != nil {
		return nil, "", fmt.Errorf("list transactions by account: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransactionRow(rows)
		if err != nil {
			return nil, "", err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate transaction rows: %w", err)
	}

	var nextCursor string
	if len(txns) > limit {
		nextCursor = encodeCursor(txns[limit-1].ID)
		txns = txns[:limit]
	}
	return txns, nextCursor, nil
}

func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.BusinessID, &t.IdempotencyKey, &t.RequestFingerprint, &t.Type, &t.Status,
		&t.SourceAccountID, &t.DestinationAccountID, &t.Amount, &t.Currency, &t.CreatedAt, &t.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}

// rowScanner is the subset of pgx.Rows/pgx.Row used by scanTransactionRow.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactionRow(row rowScanner) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.BusinessID, &t.IdempotencyKey, &t.RequestFingerprint, &t.Type, &t.Status,
		&t.SourceAccountID, &t.DestinationAccountID, &t.Amount, &t.Currency, &t.CreatedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan transaction row: %w", err)
	}
	return t, nil
}
