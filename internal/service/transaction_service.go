package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"
	"payx-ledger/pkg/apperror"
	"payx-ledger/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const idempotencyCacheTTL = 24 * time.Hour

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// TransactionEngineImpl implements ports.TransactionEngine (§4.4): preflight
// validation, deadlock-free multi-account locking, idempotent replay, and
// the single critical-section database transaction that posts ledger
// entries and enqueues the outbox event.
type TransactionEngineImpl struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	outboxRepo  ports.OutboxRepository
	idempCache  ports.IdempotencyCache
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewTransactionEngine creates a new TransactionEngineImpl.
func NewTransactionEngine(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	outboxRepo ports.OutboxRepository,
	idempCache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *TransactionEngineImpl {
	return &TransactionEngineImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		outboxRepo:  outboxRepo,
		idempCache:  idempCache,
		transactor:  transactor,
		log:         log,
	}
}

// Submit implements the single tagged-variant submit operation.
func (s *TransactionEngineImpl) Submit(ctx context.Context, req ports.SubmitRequest) (*domain.Transaction, error) {
	if err := validateSubmitRequest(req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != nil {
		if txn, err := s.replayIfExists(ctx, req); err != nil {
			return nil, err
		} else if txn != nil {
			return txn, nil
		}
	}

	txn, err := s.runCriticalSection(ctx, req)
	if errors.Is(err, ports.ErrIdempotencyKeyConflict) {
		// A concurrent request won the race on this idempotency key;
		// re-execute the replay short-circuit against the winner.
		return s.replayAfterRace(ctx, req)
	}
	return txn, err
}

func validateSubmitRequest(req ports.SubmitRequest) error {
	amt, err := decimal.NewFromString(req.Amount)
	if err != nil || amt.Sign() <= 0 {
		return apperror.ErrValidation("amount must be a positive decimal")
	}
	if !currencyRe.MatchString(req.Currency) {
		return apperror.ErrValidation("currency must be a 3-letter ISO code")
	}

	switch req.Type {
	case domain.TransactionTypeCredit:
		if req.DestinationAccountID == nil || req.SourceAccountID != nil {
			return apperror.ErrValidation("credit requires destination_account_id only")
		}
	case domain.TransactionTypeDebit:
		if req.SourceAccountID == nil || req.DestinationAccountID != nil {
			return apperror.ErrValidation("debit requires source_account_id only")
		}
	case domain.TransactionTypeTransfer:
		if req.SourceAccountID == nil || req.DestinationAccountID == nil {
			return apperror.ErrValidation("transfer requires both source_account_id and destination_account_id")
		}
		if *req.SourceAccountID == *req.DestinationAccountID {
			return apperror.ErrValidation("transfer requires distinct source and destination accounts")
		}
	default:
		return apperror.ErrValidation("unknown transaction type")
	}
	return nil
}

func requestFingerprint(req ports.SubmitRequest) string {
	var src, dst string
	if req.SourceAccountID != nil {
		src = req.SourceAccountID.String()
	}
	if req.DestinationAccountID != nil {
		dst = req.DestinationAccountID.String()
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", req.Type, src, dst, req.Amount, req.Currency)
}

// replayIfExists probes the advisory cache then the authoritative partial
// unique index for an existing transaction under this idempotency key.
func (s *TransactionEngineImpl) replayIfExists(ctx context.Context, req ports.SubmitRequest) (*domain.Transaction, error) {
	key := *req.IdempotencyKey

	if cached, ok, err := s.idempCache.Get(ctx, req.BusinessID, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("idempotency cache lookup failed, falling through to database")
	} else if ok {
		return matchOrConflict(cached, req)
	}

	existing, err := s.txRepo.FindByIdempotencyKey(ctx, req.BusinessID, key)
	if err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("probe idempotency key: %w", err))
	}
	if existing == nil {
		return nil, nil
	}
	return matchOrConflict(existing, req)
}

func (s *TransactionEngineImpl) replayAfterRace(ctx context.Context, req ports.SubmitRequest) (*domain.Transaction, error) {
	existing, err := s.txRepo.FindByIdempotencyKey(ctx, req.BusinessID, *req.IdempotencyKey)
	if err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("re-read winning transaction: %w", err))
	}
	if existing == nil {
		return nil, apperror.ErrInternal(fmt.Errorf("idempotency conflict reported but no winning row found"))
	}
	return matchOrConflict(existing, req)
}

func matchOrConflict(existing *domain.Transaction, req ports.SubmitRequest) (*domain.Transaction, error) {
	if existing.RequestFingerprint != nil && *existing.RequestFingerprint == requestFingerprint(req) {
		return existing, nil
	}
	return nil, apperror.ErrIdempotencyConflict()
}

func (s *TransactionEngineImpl) runCriticalSection(ctx context.Context, req ports.SubmitRequest) (*domain.Transaction, error) {
	txn := &domain.Transaction{
		ID:                   uuid.New(),
		BusinessID:           req.BusinessID,
		IdempotencyKey:       req.IdempotencyKey,
		Type:                 req.Type,
		Status:               domain.TransactionStatusCompleted,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               decimal.RequireFromString(req.Amount),
		Currency:             req.Currency,
	}
	fp := requestFingerprint(req)
	txn.RequestFingerprint = &fp

	lockSet := txn.LockSet()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("begin transaction: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked := make(map[uuid.UUID]*domain.Account, len(lockSet))
	for _, id := range lockSet {
		acct, err := s.accountRepo.LockAccount(ctx, dbTx, id)
		if err != nil {
			return nil, apperror.ErrDatabase(fmt.Errorf("lock account %s: %w", id, err))
		}
		if acct == nil {
			return nil, apperror.ErrAccountNotFound()
		}
		if acct.Currency != req.Currency {
			return nil, apperror.ErrCurrencyMismatch()
		}
		locked[id] = acct
	}

	amt := money.MustNew(txn.Amount, req.Currency)
	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.CompletedAt = &now

	var source, destination *domain.Account
	if req.SourceAccountID != nil {
		source = locked[*req.SourceAccountID]
	}
	if req.DestinationAccountID != nil {
		destination = locked[*req.DestinationAccountID]
	}

	if source != nil {
		available := money.MustNew(source.AvailableBalance, req.Currency)
		if ok, _ := available.GreaterThanOrEqual(amt); !ok {
			return nil, apperror.ErrInsufficientFunds(available.String(), amt.String())
		}
	}

	entries := make([]*domain.LedgerEntry, 0, 2)
	if destination != nil {
		destination.Balance = destination.Balance.Add(txn.Amount)
		destination.AvailableBalance = destination.AvailableBalance.Add(txn.Amount)
		if _, err := s.accountRepo.UpdateBalance(ctx, dbTx, destination.ID, destination.Balance.StringFixed(4), destination.AvailableBalance.StringFixed(4)); err != nil {
			return nil, apperror.ErrDatabase(fmt.Errorf("update destination balance: %w", err))
		}
		entries = append(entries, &domain.LedgerEntry{
			ID: uuid.New(), TransactionID: txn.ID, AccountID: destination.ID,
			EntryType: domain.LedgerEntryCredit, Amount: txn.Amount,
			BalanceAfter: destination.Balance, CreatedAt: now,
		})
	}
	if source != nil {
		source.Balance = source.Balance.Sub(txn.Amount)
		source.AvailableBalance = source.AvailableBalance.Sub(txn.Amount)
		if _, err := s.accountRepo.UpdateBalance(ctx, dbTx, source.ID, source.Balance.StringFixed(4), source.AvailableBalance.StringFixed(4)); err != nil {
			return nil, apperror.ErrDatabase(fmt.Errorf("update source balance: %w", err))
		}
		entries = append(entries, &domain.LedgerEntry{
			ID: uuid.New(), TransactionID: txn.ID, AccountID: source.ID,
			EntryType: domain.LedgerEntryDebit, Amount: txn.Amount,
			BalanceAfter: source.Balance, CreatedAt: now,
		})
	}

	if err := s.txRepo.InsertTransaction(ctx, dbTx, txn); err != nil {
		if errors.Is(err, ports.ErrIdempotencyKeyConflict) {
			return nil, ports.ErrIdempotencyKeyConflict
		}
		return nil, apperror.ErrDatabase(fmt.Errorf("insert transaction: %w", err))
	}

	for _, e := range entries {
		if err := s.txRepo.InsertLedgerEntry(ctx, dbTx, e); err != nil {
			return nil, apperror.ErrDatabase(fmt.Errorf("insert ledger entry: %w", err))
		}
	}

	payload, err := json.Marshal(txn)
	if err != nil {
		return nil, apperror.ErrInternal(fmt.Errorf("marshal outbox payload: %w", err))
	}
	outboxEvent := &domain.OutboxEvent{
		ID:            uuid.New(),
		BusinessID:    req.BusinessID,
		EventType:     domain.EventTypeTransactionCompleted,
		Payload:       payload,
		Status:        domain.OutboxStatusPending,
		MaxAttempts:   defaultMaxWebhookAttempts,
		NextAttemptAt: now,
		CreatedAt:     now,
	}
	if err := s.outboxRepo.InsertOutbox(ctx, dbTx, outboxEvent); err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("insert outbox event: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("commit transaction: %w", err))
	}

	if req.IdempotencyKey != nil {
		if err := s.idempCache.Set(ctx, req.BusinessID, *req.IdempotencyKey, txn, idempotencyCacheTTL); err != nil {
			s.log.Warn().Err(err).Str("key", *req.IdempotencyKey).Msg("failed to cache idempotency result")
		}
	}

	s.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("business_id", req.BusinessID.String()).
		Str("type", string(txn.Type)).
		Str("amount", txn.Amount.String()).
		Msg("transaction submitted")

	return txn, nil
}

const defaultMaxWebhookAttempts = 5
