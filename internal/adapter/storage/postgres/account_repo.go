package postgres

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"payx-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account into the database.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, business_id, currency, balance, available_balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.BusinessID, a.Currency, a.Balance, a.AvailableBalance, a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by its UUID without locking.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, business_id, currency, balance, available_balance, version, created_at, updated_at
		FROM accounts WHERE id = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// ListByBusiness returns a page of a business's accounts ordered by id,
// using the id itself as an opaque keyset cursor.
func (r *AccountRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor string, limit int) ([]domain.Account, string, error) {
	var afterID uuid.UUID
	if cursor != "" {
		decoded, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("decode cursor: %w", err)
		}
		afterID = decoded
	}

	query := `SELECT id, business_id, currency, balance, available_balance, version, created_at, updated_at
		FROM accounts WHERE business_id = $1 AND id > $2 ORDER BY id ASC LIMIT $3`

	rows, err := r.pool.Query(ctx, query, businessID, afterID, limit+1)
	if err != nil {
		return nil, "", fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a := domain.Account{}
		if err := rows.Scan(&a.ID, &a.BusinessID, &a.Currency, &a.Balance, &a.AvailableBalance, &a.Version, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate account rows: %w", err)
	}

	var nextCursor string
	if len(accounts) > limit {
		nextCursor = encodeCursor(accounts[limit-1].ID)
		accounts = accounts[:limit]
	}
	return accounts, nextCursor, nil
}

// LockAccount acquires an exclusive row lock on the account. Must run
// inside the transaction returned by DBTransactor for the duration of the
// critical section.
func (r *AccountRepo) LockAccount(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, business_id, currency, balance, available_balance, version, created_at, updated_at
		FROM accounts WHERE id = $1 FOR UPDATE`

	return r.scanAccount(tx.QueryRow(ctx, query, id))
}

// UpdateBalance persists new balance/available_balance under the held lock
// and bumps version, returning its new value.
func (r *AccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance, available string) (int64, error) {
	query := `UPDATE accounts SET balance = $1, available_balance = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 RETURNING version`

	var version int64
	err := tx.QueryRow(ctx, query, balance, available, id).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("account not found: %s", id)
		}
		return 0, fmt.Errorf("update account balance: %w", err)
	}
	return version, nil
}

func (r *AccountRepo) scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.ID, &a.BusinessID, &a.Currency, &a.Balance, &a.AvailableBalance, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func encodeCursor(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

func decodeCursor(cursor string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.Parse(string(raw))
}
