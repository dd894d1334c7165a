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

func newTestOutboxEvent(businessID uuid.UUID) *domain.OutboxEvent {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.OutboxEvent{
		ID:            uuid.New(),
		BusinessID:    businessID,
		EventType:     domain.EventTypeTransactionCompleted,
		Payload:       []byte(`{"id":"abc"}`),
		Status:        domain.OutboxStatusPending,
		MaxAttempts:   5,
		NextAttemptAt: now,
		CreatedAt:     now,
	}
}

func outboxColumns() []string {
	return []string{"id", "business_id", "event_type", "payload", "status", "attempts", "max_attempts",
		"next_attempt_at", "last_error", "processed_at", "created_at"}
}

func outboxRow(e *domain.OutboxEvent) *pgxmock.Rows {
	return pgxmock.NewRows(outboxColumns()).AddRow(
		e.ID, e.BusinessID, e.EventType, e.Payload, e.Status, e.Attempts, e.MaxAttempts,
		e.NextAttemptAt, e.LastError, e.ProcessedAt, e.CreatedAt,
	)
}

func TestOutboxRepo_InsertOutbox(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	e := newTestOutboxEvent(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO webhook_outbox").
		WithArgs(e.ID, e.BusinessID, e.EventType, e.Payload, e.Status, e.Attempts, e.MaxAttempts,
			e.NextAttemptAt, e.LastError, e.ProcessedAt, e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.InsertOutbox(context.Background(), tx, e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_ClaimBatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	e := newTestOutboxEvent(uuid.New())
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM webhook_outbox .+ FOR UPDATE SKIP LOCKED").
		WithArgs(now, 10).
		WillReturnRows(outboxRow(e))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	events, err := repo.ClaimBatch(context.Background(), tx, 10, now)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, e.ID, events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkDelivered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()
	processedAt := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE webhook_outbox SET status = 'delivered'").
		WithArgs(processedAt, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.MarkDelivered(context.Background(), tx, id, processedAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkRetrying(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()
	next := time.Now().UTC().Add(time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE webhook_outbox SET status = 'retrying'").
		WithArgs(2, next, "connection refused", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.MarkRetrying(context.Background(), tx, id, 2, next, "connection refused")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_MarkFailed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE webhook_outbox SET status = 'failed'").
		WithArgs(5, "max attempts exceeded", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.MarkFailed(context.Background(), tx, id, 5, "max attempts exceeded")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_ListDeliveries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	businessID := uuid.New()
	e := newTestOutboxEvent(businessID)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM webhook_outbox").
		WithArgs(businessID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT .+ FROM webhook_outbox WHERE business_id").
		WithArgs(businessID).
		WillReturnRows(outboxRow(e))

	events, total, err := repo.ListDeliveries(context.Background(), businessID, "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	e := newTestOutboxEvent(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM webhook_outbox WHERE id").
		WithArgs(e.ID).
		WillReturnRows(outboxRow(e))

	result, err := repo.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, e.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_Rearm(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE webhook_outbox SET status = 'pending'").
		WithArgs(pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Rearm(context.Background(), id, time.Minute)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepo_Rearm_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOutboxRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE webhook_outbox SET status = 'pending'").
		WithArgs(pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Rearm(context.Background(), id, time.Minute)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
