package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds a tenant-owned balance in a single currency. balance and
// available_balance are both enforced non-negative at the storage layer;
// version increases monotonically on every update (reserved for an
// optimistic-retry path, unused by the pessimistic-locking primary flow).
type Account struct {
	ID                uuid.UUID       `json:"id"`
	BusinessID        uuid.UUID       `json:"business_id"`
	Currency          string          `json:"currency"`
	Balance           decimal.Decimal `json:"balance"`
	AvailableBalance  decimal.Decimal `json:"available_balance"`
	Version           int64           `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
