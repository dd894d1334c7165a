package postgres

import (
	"context"
	"testing"
	"time"

	"payx-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCredential(businessID uuid.UUID) *domain.Credential {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Credential{
		ID:                 uuid.New(),
		BusinessID:         businessID,
		KeyHash:            "argon2id$hash",
		KeyPrefix:          "abcdefghijkl",
		RateLimitPerMinute: 600,
		CreatedAt:          now,
	}
}

func credentialColumns() []string {
	return []string{"id", "business_id", "key_hash", "key_prefix", "rate_limit_per_minute", "expires_at", "revoked_at", "last_used_at", "created_at"}
}

func credentialRow(c *domain.Credential) *pgxmock.Rows {
	return pgxmock.NewRows(credentialColumns()).AddRow(
		c.ID, c.BusinessID, c.KeyHash, c.KeyPrefix, c.RateLimitPerMinute,
		c.ExpiresAt, c.RevokedAt, c.LastUsedAt, c.CreatedAt,
	)
}

func TestCredentialRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	c := newTestCredential(uuid.New())

	mock.ExpectExec("INSERT INTO credentials").
		WithArgs(c.ID, c.BusinessID, c.KeyHash, c.KeyPrefix, c.RateLimitPerMinute,
			c.ExpiresAt, c.RevokedAt, c.LastUsedAt, c.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepo_FindByPrefix(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	c := newTestCredential(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM credentials WHERE key_prefix .+ revoked_at IS NULL").
		WithArgs(c.KeyPrefix).
		WillReturnRows(credentialRow(c))

	result, err := repo.FindByPrefix(context.Background(), c.KeyPrefix)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepo_FindByPrefix_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM credentials WHERE key_prefix .+ revoked_at IS NULL").
		WithArgs("nomatch12345").
		WillReturnRows(pgxmock.NewRows(credentialColumns()))

	result, err := repo.FindByPrefix(context.Background(), "nomatch12345")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepo_TouchLastUsed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE credentials SET last_used_at").
		WithArgs(now, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.TouchLastUsed(context.Background(), id, now)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
