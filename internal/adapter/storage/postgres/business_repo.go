package postgres

import (
	"context"
	"errors"
	"fmt"

	"payx-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BusinessRepo implements ports.BusinessRepository.
type BusinessRepo struct {
	pool Pool
}

// NewBusinessRepo creates a new BusinessRepo.
func NewBusinessRepo(pool Pool) *BusinessRepo {
	return &BusinessRepo{pool: pool}
}

// Create inserts a new business into the database.
func (r *BusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	query := `INSERT INTO businesses (id, name, email, webhook_url, webhook_secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Email, b.WebhookURL, b.WebhookSecret, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID fetches a business by its UUID.
func (r *BusinessRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	query := `SELECT id, name, email, webhook_url, webhook_secret, created_at, updated_at
		FROM businesses WHERE id = $1`

	return r.scanBusiness(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail fetches a business by its email address.
func (r *BusinessRepo) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	query := `SELECT id, name, email, webhook_url, webhook_secret, created_at, updated_at
		FROM businesses WHERE email = $1`

	return r.scanBusiness(r.pool.QueryRow(ctx, query, email))
}

// Update updates a business's mutable fields.
func (r *BusinessRepo) Update(ctx context.Context, b *domain.Business) error {
	query := `UPDATE businesses SET name = $1, webhook_url = $2, webhook_secret = $3, updated_at = NOW()
		WHERE id = $4`

	tag, err := r.pool.Exec(ctx, query, b.Name, b.WebhookURL, b.WebhookSecret, b.ID)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("business not found: %s", b.ID)
	}
	return nil
}

func (r *BusinessRepo) scanBusiness(row pgx.Row) (*domain.Business, error) {
	b := &domain.Business{}
	err := row.Scan(&b.ID, &b.Name, &b.Email, &b.WebhookURL, &b.WebhookSecret, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan business: %w", err)
	}
	return b, nil
}
