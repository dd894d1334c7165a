package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

func decimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// --- In-Memory Business Repo ---

type inMemoryBusinessRepo struct {
	mu        sync.RWMutex
	businesses map[uuid.UUID]*domain.Business
}

func newInMemoryBusinessRepo() *inMemoryBusinessRepo {
	return &inMemoryBusinessRepo{businesses: make(map[uuid.UUID]*domain.Business)}
}

func (r *inMemoryBusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.businesses[b.ID] = b
	return nil
}

func (r *inMemoryBusinessRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.businesses[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r *inMemoryBusinessRepo) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.businesses {
		if b.Email == email {
			return b, nil
		}
	}
	return nil, nil
}

func (r *inMemoryBusinessRepo) Update(ctx context.Context, b *domain.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.businesses[b.ID] = b
	return nil
}

// --- In-Memory Credential Repo ---

type inMemoryCredentialRepo struct {
	mu          sync.RWMutex
	credentials map[uuid.UUID]*domain.Credential
}

func newInMemoryCredentialRepo() *inMemoryCredentialRepo {
	return &inMemoryCredentialRepo{credentials: make(map[uuid.UUID]*domain.Credential)}
}

func (r *inMemoryCredentialRepo) Create(ctx context.Context, c *domain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credentials[c.ID] = c
	return nil
}

func (r *inMemoryCredentialRepo) FindByPrefix(ctx context.Context, prefix string) (*domain.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.credentials {
		if c.KeyPrefix == prefix && c.RevokedAt == nil {
			return c, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCredentialRepo) TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.credentials[id]; ok {
		c.LastUsedAt = &at
	}
	return nil
}

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, cursor string, limit int) ([]domain.Account, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Account
	for _, a := range r.accounts {
		if a.BusinessID == businessID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID.String() < result[j].ID.String() })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, "", nil
}

// LockAccount takes the repo's single mutex and registers its release with
// the transaction so it is held until Commit or Rollback, emulating a
// SELECT ... FOR UPDATE row lock closely enough to exercise the engine's
// sequential critical section.
// LockAccount serializes on the repo's single mutex, which a transfer's two
// LockAccount calls on the same tx would deadlock against if taken twice;
// noopTx.lockOnce ensures only the first call in a transaction actually
// acquires it, same as a real transaction re-acquiring a lock it already
// holds.
func (r *inMemoryAccountRepo) LockAccount(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	if nt, ok := tx.(*noopTx); ok {
		if nt.lockOnce() {
			r.mu.Lock()
			nt.onClose(r.mu.Unlock)
		}
	} else {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// UpdateBalance assumes the caller already holds the lock taken by
// LockAccount within the same transaction.
func (r *inMemoryAccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance, available string) (int64, error) {
	a, ok := r.accounts[id]
	if !ok {
		return 0, nil
	}
	bal, err := decimalFromString(balance)
	if err != nil {
		return 0, err
	}
	avail, err := decimalFromString(available)
	if err != nil {
		return 0, err
	}
	a.Balance = bal
	a.AvailableBalance = avail
	a.Version++
	a.UpdatedAt = time.Now().UTC()
	return a.Version, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
	ledger       []domain.LedgerEntry
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.IdempotencyKey != nil {
		for _, existing := range r.transactions {
			if existing.BusinessID == t.BusinessID && existing.IdempotencyKey != nil && *existing.IdempotencyKey == *t.IdempotencyKey {
				return ports.ErrIdempotencyKeyConflict
			}
		}
	}
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) InsertLedgerEntry(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger = append(r.ledger, *e)
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) FindByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transactions {
		if t.BusinessID == businessID && t.IdempotencyKey != nil && *t.IdempotencyKey == key {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, cursor string, limit int) ([]domain.Transaction, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if (t.SourceAccountID != nil && *t.SourceAccountID == accountID) ||
			(t.DestinationAccountID != nil && *t.DestinationAccountID == accountID) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, "", nil
}

// --- In-Memory Outbox Repo ---

type inMemoryOutboxRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*domain.OutboxEvent
}

func newInMemoryOutboxRepo() *inMemoryOutboxRepo {
	return &inMemoryOutboxRepo{events: make(map[uuid.UUID]*domain.OutboxEvent)}
}

func (r *inMemoryOutboxRepo) InsertOutbox(ctx context.Context, tx pgx.Tx, e *domain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *inMemoryOutboxRepo) ClaimBatch(ctx context.Context, tx pgx.Tx, limit int, now time.Time) ([]domain.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var claimed []domain.OutboxEvent
	for _, e := range r.events {
		if len(claimed) >= limit {
			break
		}
		if (e.Status == domain.OutboxStatusPending || e.Status == domain.OutboxStatusRetrying) && !e.NextAttemptAt.After(now) {
			claimed = append(claimed, *e)
		}
	}
	return claimed, nil
}

func (r *inMemoryOutboxRepo) MarkDelivered(ctx context.Context, tx pgx.Tx, id uuid.UUID, processedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.events[id]; ok {
		e.Status = domain.OutboxStatusDelivered
		e.ProcessedAt = &processedAt
	}
	return nil
}

func (r *inMemoryOutboxRepo) MarkRetrying(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastErr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.events[id]; ok {
		e.Status = domain.OutboxStatusRetrying
		e.Attempts = attempts
		e.NextAttemptAt = nextAttemptAt
		e.LastError = &lastErr
	}
	return nil
}

func (r *inMemoryOutboxRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, attempts int, lastErr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.events[id]; ok {
		e.Status = domain.OutboxStatusFailed
		e.Attempts = attempts
		e.LastError = &lastErr
	}
	return nil
}

func (r *inMemoryOutboxRepo) ListDeliveries(ctx context.Context, businessID uuid.UUID, status string, offset, limit int) ([]domain.OutboxEvent, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.OutboxEvent
	for _, e := range r.events {
		if e.BusinessID != businessID {
			continue
		}
		if status != "" && string(e.Status) != status {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	total := int64(len(result))
	if offset >= len(result) {
		return []domain.OutboxEvent{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (r *inMemoryOutboxRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *inMemoryOutboxRepo) Rearm(ctx context.Context, id uuid.UUID, delay time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok || e.Status != domain.OutboxStatusFailed {
		return nil
	}
	e.Status = domain.OutboxStatusPending
	e.NextAttemptAt = time.Now().UTC().Add(delay)
	e.LastError = nil
	return nil
}

// --- In-Memory Rate Window Repo ---

type inMemoryRateWindowRepo struct {
	mu      sync.Mutex
	windows map[string]int
}

func newInMemoryRateWindowRepo() *inMemoryRateWindowRepo {
	return &inMemoryRateWindowRepo{windows: make(map[string]int)}
}

func (r *inMemoryRateWindowRepo) CheckAndIncrement(ctx context.Context, credentialID uuid.UUID, windowStart time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := credentialID.String() + "|" + windowStart.String()
	r.windows[key]++
	return r.windows[key], nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu   sync.Mutex
	logs []domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

// --- In-Memory Idempotency Cache ---

type inMemoryIdempotencyCache struct {
	mu    sync.Mutex
	cache map[string]*domain.Transaction
}

func newInMemoryIdempotencyCache() *inMemoryIdempotencyCache {
	return &inMemoryIdempotencyCache{cache: make(map[string]*domain.Transaction)}
}

func (c *inMemoryIdempotencyCache) Get(ctx context.Context, businessID uuid.UUID, key string) (*domain.Transaction, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.cache[businessID.String()+"|"+key]
	return t, ok, nil
}

func (c *inMemoryIdempotencyCache) Set(ctx context.Context, businessID uuid.UUID, key string, txn *domain.Transaction, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[businessID.String()+"|"+key] = txn
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

// inMemoryTransactor opens a noopTx that tracks lock-release callbacks so
// LockAccount's acquisition and the transaction's Commit/Rollback bracket
// the same critical section a real row lock would, without a database.
type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing. It also
// carries lock-release callbacks registered by LockAccount, run exactly
// once on whichever of Commit/Rollback fires first — mirroring how a real
// transaction's row locks are released at the end of the transaction
// regardless of outcome.
type noopTx struct {
	once       sync.Once
	releases   []func()
	lockTaken  bool
}

func (t *noopTx) onClose(release func()) {
	t.releases = append(t.releases, release)
}

// lockOnce reports whether this is the first call to take the account
// lock within this transaction.
func (t *noopTx) lockOnce() bool {
	if t.lockTaken {
		return false
	}
	t.lockTaken = true
	return true
}

func (t *noopTx) runReleases() {
	t.once.Do(func() {
		for i := len(t.releases) - 1; i >= 0; i-- {
			t.releases[i]()
		}
	})
}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error {
	t.runReleases()
	return nil
}
func (t *noopTx) Rollback(ctx context.Context) error {
	t.runReleases()
	return nil
}
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                              { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
