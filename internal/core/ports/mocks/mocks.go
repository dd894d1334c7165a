// Package mocks provides gomock-based test doubles for the ports
// interfaces. Hand-maintained in the shape mockgen would produce from
// internal/core/ports via:
//
//	mockgen -source=internal/core/ports/repositories.go -destination=internal/core/ports/mocks/mocks.go -package=mocks
package mocks

import (
	"context"
	"reflect"
	"time"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/mock/gomock"
)

// ---- DBTransactor ----

type MockDBTransactor struct {
	ctrl     *gomock.Controller
	recorder *MockDBTransactorRecorder
}

type MockDBTransactorRecorder struct{ mock *MockDBTransactor }

func NewMockDBTransactor(ctrl *gomock.Controller) *MockDBTransactor {
	m := &MockDBTransactor{ctrl: ctrl}
	m.recorder = &MockDBTransactorRecorder{m}
	return m
}

func (m *MockDBTransactor) EXPECT() *MockDBTransactorRecorder { return m.recorder }

func (m *MockDBTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Begin", ctx)
	tx, _ := ret[0].(pgx.Tx)
	err, _ := ret[1].(error)
	return tx, err
}

func (mr *MockDBTransactorRecorder) Begin(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Begin", reflect.TypeOf((*MockDBTransactor)(nil).Begin), ctx)
}

// ---- BusinessRepository ----

type MockBusinessRepository struct {
	ctrl     *gomock.Controller
	recorder *MockBusinessRepositoryRecorder
}

type MockBusinessRepositoryRecorder struct{ mock *MockBusinessRepository }

func NewMockBusinessRepository(ctrl *gomock.Controller) *MockBusinessRepository {
	m := &MockBusinessRepository{ctrl: ctrl}
	m.recorder = &MockBusinessRepositoryRecorder{m}
	return m
}

func (m *MockBusinessRepository) EXPECT() *MockBusinessRepositoryRecorder { return m.recorder }

func (m *MockBusinessRepository) Create(ctx context.Context, b *domain.Business) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, b)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockBusinessRepositoryRecorder) Create(ctx, b interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockBusinessRepository)(nil).Create), ctx, b)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	b, _ := ret[0].(*domain.Business)
	err, _ := ret[1].(error)
	return b, err
}
func (mr *MockBusinessRepositoryRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockBusinessRepository)(nil).GetByID), ctx, id)
}

func (m *MockBusinessRepository) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByEmail", ctx, email)
	b, _ := ret[0].(*domain.Business)
	err, _ := ret[1].(error)
	return b, err
}
func (mr *MockBusinessRepositoryRecorder) GetByEmail(ctx, email interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByEmail", reflect.TypeOf((*MockBusinessRepository)(nil).GetByEmail), ctx, email)
}

func (m *MockBusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, b)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockBusinessRepositoryRecorder) Update(ctx, b interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockBusinessRepository)(nil).Update), ctx, b)
}

// ---- CredentialRepository ----

type MockCredentialRepository struct {
	ctrl     *gomock.Controller
	recorder *MockCredentialRepositoryRecorder
}

type MockCredentialRepositoryRecorder struct{ mock *MockCredentialRepository }

func NewMockCredentialRepository(ctrl *gomock.Controller) *MockCredentialRepository {
	m := &MockCredentialRepository{ctrl: ctrl}
	m.recorder = &MockCredentialRepositoryRecorder{m}
	return m
}

func (m *MockCredentialRepository) EXPECT() *MockCredentialRepositoryRecorder { return m.recorder }

func (m *MockCredentialRepository) Create(ctx context.Context, c *domain.Credential) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, c)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockCredentialRepositoryRecorder) Create(ctx, c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockCredentialRepository)(nil).Create), ctx, c)
}

func (m *MockCredentialRepository) FindByPrefix(ctx context.Context, prefix string) (*domain.Credential, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByPrefix", ctx, prefix)
	c, _ := ret[0].(*domain.Credential)
	err, _ := ret[1].(error)
	return c, err
}
func (mr *MockCredentialRepositoryRecorder) FindByPrefix(ctx, prefix interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByPrefix", reflect.TypeOf((*MockCredentialRepository)(nil).FindByPrefix), ctx, prefix)
}

func (m *MockCredentialRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TouchLastUsed", ctx, id, at)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockCredentialRepositoryRecorder) TouchLastUsed(ctx, id, at interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TouchLastUsed", reflect.TypeOf((*MockCredentialRepository)(nil).TouchLastUsed), ctx, id, at)
}

// ---- AccountRepository ----

type MockAccountRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAccountRepositoryRecorder
}

type MockAccountRepositoryRecorder struct{ mock *MockAccountRepository }

func NewMockAccountRepository(ctrl *gomock.Controller) *MockAccountRepository {
	m := &MockAccountRepository{ctrl: ctrl}
	m.recorder = &MockAccountRepositoryRecorder{m}
	return m
}

func (m *MockAccountRepository) EXPECT() *MockAccountRepositoryRecorder { return m.recorder }

func (m *MockAccountRepository) Create(ctx context.Context, a *domain.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, a)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockAccountRepositoryRecorder) Create(ctx, a interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAccountRepository)(nil).Create), ctx, a)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	a, _ := ret[0].(*domain.Account)
	err, _ := ret[1].(error)
	return a, err
}
func (mr *MockAccountRepositoryRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockAccountRepository)(nil).GetByID), ctx, id)
}

func (m *MockAccountRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor string, limit int) ([]domain.Account, string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByBusiness", ctx, businessID, cursor, limit)
	accts, _ := ret[0].([]domain.Account)
	next, _ := ret[1].(string)
	err, _ := ret[2].(error)
	return accts, next, err
}
func (mr *MockAccountRepositoryRecorder) ListByBusiness(ctx, businessID, cursor, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByBusiness", reflect.TypeOf((*MockAccountRepository)(nil).ListByBusiness), ctx, businessID, cursor, limit)
}

func (m *MockAccountRepository) LockAccount(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockAccount", ctx, tx, id)
	a, _ := ret[0].(*domain.Account)
	err, _ := ret[1].(error)
	return a, err
}
func (mr *MockAccountRepositoryRecorder) LockAccount(ctx, tx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockAccount", reflect.TypeOf((*MockAccountRepository)(nil).LockAccount), ctx, tx, id)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance, available string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateBalance", ctx, tx, id, balance, available)
	v, _ := ret[0].(int64)
	err, _ := ret[1].(error)
	return v, err
}
func (mr *MockAccountRepositoryRecorder) UpdateBalance(ctx, tx, id, balance, available interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateBalance", reflect.TypeOf((*MockAccountRepository)(nil).UpdateBalance), ctx, tx, id, balance, available)
}

// ---- TransactionRepository ----

type MockTransactionRepository struct {
	ctrl     *gomock.Controller
	recorder *MockTransactionRepositoryRecorder
}

type MockTransactionRepositoryRecorder struct{ mock *MockTransactionRepository }

func NewMockTransactionRepository(ctrl *gomock.Controller) *MockTransactionRepository {
	m := &MockTransactionRepository{ctrl: ctrl}
	m.recorder = &MockTransactionRepositoryRecorder{m}
	return m
}

func (m *MockTransactionRepository) EXPECT() *MockTransactionRepositoryRecorder { return m.recorder }

func (m *MockTransactionRepository) InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertTransaction", ctx, tx, t)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockTransactionRepositoryRecorder) InsertTransaction(ctx, tx, t interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertTransaction", reflect.TypeOf((*MockTransactionRepository)(nil).InsertTransaction), ctx, tx, t)
}

func (m *MockTransactionRepository) InsertLedgerEntry(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertLedgerEntry", ctx, tx, e)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockTransactionRepositoryRecorder) InsertLedgerEntry(ctx, tx, e interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertLedgerEntry", reflect.TypeOf((*MockTransactionRepository)(nil).InsertLedgerEntry), ctx, tx, e)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	t, _ := ret[0].(*domain.Transaction)
	err, _ := ret[1].(error)
	return t, err
}
func (mr *MockTransactionRepositoryRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockTransactionRepository)(nil).GetByID), ctx, id)
}

func (m *MockTransactionRepository) FindByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByIdempotencyKey", ctx, businessID, key)
	t, _ := ret[0].(*domain.Transaction)
	err, _ := ret[1].(error)
	return t, err
}
func (mr *MockTransactionRepositoryRecorder) FindByIdempotencyKey(ctx, businessID, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByIdempotencyKey", reflect.TypeOf((*MockTransactionRepository)(nil).FindByIdempotencyKey), ctx, businessID, key)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, cursor string, limit int) ([]domain.Transaction, string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByAccount", ctx, accountID, cursor, limit)
	txns, _ := ret[0].([]domain.Transaction)
	next, _ := ret[1].(string)
	err, _ := ret[2].(error)
	return txns, next, err
}
func (mr *MockTransactionRepositoryRecorder) ListByAccount(ctx, accountID, cursor, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByAccount", reflect.TypeOf((*MockTransactionRepository)(nil).ListByAccount), ctx, accountID, cursor, limit)
}

// ---- OutboxRepository ----

type MockOutboxRepository struct {
	ctrl     *gomock.Controller
	recorder *MockOutboxRepositoryRecorder
}

type MockOutboxRepositoryRecorder struct{ mock *MockOutboxRepository }

func NewMockOutboxRepository(ctrl *gomock.Controller) *MockOutboxRepository {
	m := &MockOutboxRepository{ctrl: ctrl}
	m.recorder = &MockOutboxRepositoryRecorder{m}
	return m
}

func (m *MockOutboxRepository) EXPECT() *MockOutboxRepositoryRecorder { return m.recorder }

func (m *MockOutboxRepository) InsertOutbox(ctx context.Context, tx pgx.Tx, e *domain.OutboxEvent) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertOutbox", ctx, tx, e)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockOutboxRepositoryRecorder) InsertOutbox(ctx, tx, e interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertOutbox", reflect.TypeOf((*MockOutboxRepository)(nil).InsertOutbox), ctx, tx, e)
}

func (m *MockOutboxRepository) ClaimBatch(ctx context.Context, tx pgx.Tx, limit int, now time.Time) ([]domain.OutboxEvent, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimBatch", ctx, tx, limit, now)
	events, _ := ret[0].([]domain.OutboxEvent)
	err, _ := ret[1].(error)
	return events, err
}
func (mr *MockOutboxRepositoryRecorder) ClaimBatch(ctx, tx, limit, now interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimBatch", reflect.TypeOf((*MockOutboxRepository)(nil).ClaimBatch), ctx, tx, limit, now)
}

func (m *MockOutboxRepository) MarkDelivered(ctx context.Context, tx pgx.Tx, id uuid.UUID, processedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkDelivered", ctx, tx, id, processedAt)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockOutboxRepositoryRecorder) MarkDelivered(ctx, tx, id, processedAt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkDelivered", reflect.TypeOf((*MockOutboxRepository)(nil).MarkDelivered), ctx, tx, id, processedAt)
}

func (m *MockOutboxRepository) MarkRetrying(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastErr string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkRetrying", ctx, tx, id, attempts, nextAttemptAt, lastErr)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockOutboxRepositoryRecorder) MarkRetrying(ctx, tx, id, attempts, nextAttemptAt, lastErr interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkRetrying", reflect.TypeOf((*MockOutboxRepository)(nil).MarkRetrying), ctx, tx, id, attempts, nextAttemptAt, lastErr)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, lastErr string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkFailed", ctx, tx, id, attempts, lastErr)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockOutboxRepositoryRecorder) MarkFailed(ctx, tx, id, attempts, lastErr interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkFailed", reflect.TypeOf((*MockOutboxRepository)(nil).MarkFailed), ctx, tx, id, attempts, lastErr)
}

func (m *MockOutboxRepository) ListDeliveries(ctx context.Context, businessID uuid.UUID, status string, offset, limit int) ([]domain.OutboxEvent, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListDeliveries", ctx, businessID, status, offset, limit)
	events, _ := ret[0].([]domain.OutboxEvent)
	total, _ := ret[1].(int64)
	err, _ := ret[2].(error)
	return events, total, err
}
func (mr *MockOutboxRepositoryRecorder) ListDeliveries(ctx, businessID, status, offset, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListDeliveries", reflect.TypeOf((*MockOutboxRepository)(nil).ListDeliveries), ctx, businessID, status, offset, limit)
}

func (m *MockOutboxRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboxEvent, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	e, _ := ret[0].(*domain.OutboxEvent)
	err, _ := ret[1].(error)
	return e, err
}
func (mr *MockOutboxRepositoryRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockOutboxRepository)(nil).GetByID), ctx, id)
}

func (m *MockOutboxRepository) Rearm(ctx context.Context, id uuid.UUID, delay time.Duration) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rearm", ctx, id, delay)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockOutboxRepositoryRecorder) Rearm(ctx, id, delay interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rearm", reflect.TypeOf((*MockOutboxRepository)(nil).Rearm), ctx, id, delay)
}

// ---- RateWindowRepository ----

type MockRateWindowRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRateWindowRepositoryRecorder
}

type MockRateWindowRepositoryRecorder struct{ mock *MockRateWindowRepository }

func NewMockRateWindowRepository(ctrl *gomock.Controller) *MockRateWindowRepository {
	m := &MockRateWindowRepository{ctrl: ctrl}
	m.recorder = &MockRateWindowRepositoryRecorder{m}
	return m
}

func (m *MockRateWindowRepository) EXPECT() *MockRateWindowRepositoryRecorder { return m.recorder }

func (m *MockRateWindowRepository) CheckAndIncrement(ctx context.Context, credentialID uuid.UUID, windowStart time.Time) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckAndIncrement", ctx, credentialID, windowStart)
	count, _ := ret[0].(int)
	err, _ := ret[1].(error)
	return count, err
}
func (mr *MockRateWindowRepositoryRecorder) CheckAndIncrement(ctx, credentialID, windowStart interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckAndIncrement", reflect.TypeOf((*MockRateWindowRepository)(nil).CheckAndIncrement), ctx, credentialID, windowStart)
}

// ---- AuditRepository ----

type MockAuditRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAuditRepositoryRecorder
}

type MockAuditRepositoryRecorder struct{ mock *MockAuditRepository }

func NewMockAuditRepository(ctrl *gomock.Controller) *MockAuditRepository {
	m := &MockAuditRepository{ctrl: ctrl}
	m.recorder = &MockAuditRepositoryRecorder{m}
	return m
}

func (m *MockAuditRepository) EXPECT() *MockAuditRepositoryRecorder { return m.recorder }

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, log)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockAuditRepositoryRecorder) Create(ctx, log interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAuditRepository)(nil).Create), ctx, log)
}

// ---- HashService ----

type MockHashService struct {
	ctrl     *gomock.Controller
	recorder *MockHashServiceRecorder
}

type MockHashServiceRecorder struct{ mock *MockHashService }

func NewMockHashService(ctrl *gomock.Controller) *MockHashService {
	m := &MockHashService{ctrl: ctrl}
	m.recorder = &MockHashServiceRecorder{m}
	return m
}

func (m *MockHashService) EXPECT() *MockHashServiceRecorder { return m.recorder }

func (m *MockHashService) Hash(secret string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Hash", secret)
	s, _ := ret[0].(string)
	err, _ := ret[1].(error)
	return s, err
}
func (mr *MockHashServiceRecorder) Hash(secret interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Hash", reflect.TypeOf((*MockHashService)(nil).Hash), secret)
}

func (m *MockHashService) Verify(secret, hash string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Verify", secret, hash)
	ok, _ := ret[0].(bool)
	err, _ := ret[1].(error)
	return ok, err
}
func (mr *MockHashServiceRecorder) Verify(secret, hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Verify", reflect.TypeOf((*MockHashService)(nil).Verify), secret, hash)
}

// ---- SignatureService ----

type MockSignatureService struct {
	ctrl     *gomock.Controller
	recorder *MockSignatureServiceRecorder
}

type MockSignatureServiceRecorder struct{ mock *MockSignatureService }

func NewMockSignatureService(ctrl *gomock.Controller) *MockSignatureService {
	m := &MockSignatureService{ctrl: ctrl}
	m.recorder = &MockSignatureServiceRecorder{m}
	return m
}

func (m *MockSignatureService) EXPECT() *MockSignatureServiceRecorder { return m.recorder }

func (m *MockSignatureService) Sign(payload []byte, secret string) string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sign", payload, secret)
	s, _ := ret[0].(string)
	return s
}
func (mr *MockSignatureServiceRecorder) Sign(payload, secret interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sign", reflect.TypeOf((*MockSignatureService)(nil).Sign), payload, secret)
}

func (m *MockSignatureService) Verify(payload []byte, secret, signature string) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Verify", payload, secret, signature)
	ok, _ := ret[0].(bool)
	return ok
}
func (mr *MockSignatureServiceRecorder) Verify(payload, secret, signature interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Verify", reflect.TypeOf((*MockSignatureService)(nil).Verify), payload, secret, signature)
}

// ---- IdempotencyCache ----

type MockIdempotencyCache struct {
	ctrl     *gomock.Controller
	recorder *MockIdempotencyCacheRecorder
}

type MockIdempotencyCacheRecorder struct{ mock *MockIdempotencyCache }

func NewMockIdempotencyCache(ctrl *gomock.Controller) *MockIdempotencyCache {
	m := &MockIdempotencyCache{ctrl: ctrl}
	m.recorder = &MockIdempotencyCacheRecorder{m}
	return m
}

func (m *MockIdempotencyCache) EXPECT() *MockIdempotencyCacheRecorder { return m.recorder }

func (m *MockIdempotencyCache) Get(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, businessID, key)
	t, _ := ret[0].(*domain.Transaction)
	ok, _ := ret[1].(bool)
	err, _ := ret[2].(error)
	return t, ok, err
}
func (mr *MockIdempotencyCacheRecorder) Get(ctx, businessID, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockIdempotencyCache)(nil).Get), ctx, businessID, key)
}

func (m *MockIdempotencyCache) Set(ctx context.Context, businessID uuid.UUID, key string, txn *domain.Transaction, ttl time.Duration) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Set", ctx, businessID, key, txn, ttl)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockIdempotencyCacheRecorder) Set(ctx, businessID, key, txn, ttl interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*MockIdempotencyCache)(nil).Set), ctx, businessID, key, txn, ttl)
}

// ---- WebhookDispatcher ----

type MockWebhookDispatcher struct {
	ctrl     *gomock.Controller
	recorder *MockWebhookDispatcherRecorder
}

type MockWebhookDispatcherRecorder struct{ mock *MockWebhookDispatcher }

func NewMockWebhookDispatcher(ctrl *gomock.Controller) *MockWebhookDispatcher {
	m := &MockWebhookDispatcher{ctrl: ctrl}
	m.recorder = &MockWebhookDispatcherRecorder{m}
	return m
}

func (m *MockWebhookDispatcher) EXPECT() *MockWebhookDispatcherRecorder { return m.recorder }

func (m *MockWebhookDispatcher) Deliver(ctx context.Context, event *domain.OutboxEvent, targetURL, secret string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deliver", ctx, event, targetURL, secret)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockWebhookDispatcherRecorder) Deliver(ctx, event, targetURL, secret interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deliver", reflect.TypeOf((*MockWebhookDispatcher)(nil).Deliver), ctx, event, targetURL, secret)
}

// ---- AuthGateService ----

type MockAuthGateService struct {
	ctrl     *gomock.Controller
	recorder *MockAuthGateServiceRecorder
}

type MockAuthGateServiceRecorder struct{ mock *MockAuthGateService }

func NewMockAuthGateService(ctrl *gomock.Controller) *MockAuthGateService {
	m := &MockAuthGateService{ctrl: ctrl}
	m.recorder = &MockAuthGateServiceRecorder{m}
	return m
}

func (m *MockAuthGateService) EXPECT() *MockAuthGateServiceRecorder { return m.recorder }

func (m *MockAuthGateService) Authenticate(ctx context.Context, rawKey string) (*ports.AuthResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Authenticate", ctx, rawKey)
	result, _ := ret[0].(*ports.AuthResult)
	err, _ := ret[1].(error)
	return result, err
}
func (mr *MockAuthGateServiceRecorder) Authenticate(ctx, rawKey interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Authenticate", reflect.TypeOf((*MockAuthGateService)(nil).Authenticate), ctx, rawKey)
}

func (m *MockAuthGateService) CheckRateLimit(ctx context.Context, credential *domain.Credential, now time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckRateLimit", ctx, credential, now)
	err, _ := ret[0].(error)
	return err
}
func (mr *MockAuthGateServiceRecorder) CheckRateLimit(ctx, credential, now interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckRateLimit", reflect.TypeOf((*MockAuthGateService)(nil).CheckRateLimit), ctx, credential, now)
}

// ---- TransactionEngine ----

type MockTransactionEngine struct {
	ctrl     *gomock.Controller
	recorder *MockTransactionEngineRecorder
}

type MockTransactionEngineRecorder struct{ mock *MockTransactionEngine }

func NewMockTransactionEngine(ctrl *gomock.Controller) *MockTransactionEngine {
	m := &MockTransactionEngine{ctrl: ctrl}
	m.recorder = &MockTransactionEngineRecorder{m}
	return m
}

func (m *MockTransactionEngine) EXPECT() *MockTransactionEngineRecorder { return m.recorder }

func (m *MockTransactionEngine) Submit(ctx context.Context, req ports.SubmitRequest) (*domain.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Submit", ctx, req)
	txn, _ := ret[0].(*domain.Transaction)
	err, _ := ret[1].(error)
	return txn, err
}
func (mr *MockTransactionEngineRecorder) Submit(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Submit", reflect.TypeOf((*MockTransactionEngine)(nil).Submit), ctx, req)
}

var (
	_ ports.DBTransactor          = (*MockDBTransactor)(nil)
	_ ports.BusinessRepository    = (*MockBusinessRepository)(nil)
	_ ports.CredentialRepository  = (*MockCredentialRepository)(nil)
	_ ports.AccountRepository     = (*MockAccountRepository)(nil)
	_ ports.TransactionRepository = (*MockTransactionRepository)(nil)
	_ ports.OutboxRepository      = (*MockOutboxRepository)(nil)
	_ ports.RateWindowRepository  = (*MockRateWindowRepository)(nil)
	_ ports.AuditRepository       = (*MockAuditRepository)(nil)
	_ ports.HashService           = (*MockHashService)(nil)
	_ ports.SignatureService      = (*MockSignatureService)(nil)
	_ ports.IdempotencyCache      = (*MockIdempotencyCache)(nil)
	_ ports.WebhookDispatcher     = (*MockWebhookDispatcher)(nil)
	_ ports.AuthGateService       = (*MockAuthGateService)(nil)
	_ ports.TransactionEngine     = (*MockTransactionEngine)(nil)
)
