// Package worker hosts the background processes that run outside the HTTP
// request path, namely the webhook outbox drain loop.
package worker

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"payx-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// Config tunes the drain loop's cadence and retry budget.
type Config struct {
	BatchSize      int
	PollInterval   time.Duration
	RequestTimeout time.Duration
	MaxAttempts    int
	MaxBackoff     time.Duration
}

// WebhookWorker periodically claims deliverable rows from the transactional
// outbox and attempts delivery, one row per database transaction so a
// FOR UPDATE SKIP LOCKED claim and its outcome are never observed apart.
type WebhookWorker struct {
	outboxRepo   ports.OutboxRepository
	businessRepo ports.BusinessRepository
	dispatcher   ports.WebhookDispatcher
	transactor   ports.DBTransactor
	cfg          Config
	log          zerolog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a new WebhookWorker.
func New(
	outboxRepo ports.OutboxRepository,
	businessRepo ports.BusinessRepository,
	dispatcher ports.WebhookDispatcher,
	transactor ports.DBTransactor,
	cfg Config,
	log zerolog.Logger,
) *WebhookWorker {
	return &WebhookWorker{
		outboxRepo:   outboxRepo,
		businessRepo: businessRepo,
		dispatcher:   dispatcher,
		transactor:   transactor,
		cfg:          cfg,
		log:          log,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Run blocks, polling every cfg.PollInterval until Stop is called. It
// returns once the loop has exited between batches — never mid-delivery.
func (w *WebhookWorker) Run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			if n, err := w.drainBatch(ctx); err != nil {
				w.log.Error().Err(err).Msg("webhook worker: batch drain failed")
			} else if n > 0 {
				w.log.Debug().Int("processed", n).Msg("webhook worker: batch drained")
			}
		}
	}
}

// Stop signals the loop to exit and blocks until it has.
func (w *WebhookWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// drainBatch claims and processes up to cfg.BatchSize rows, one
// database transaction per row, stopping early once the queue is empty.
func (w *WebhookWorker) drainBatch(ctx context.Context) (int, error) {
	processed := 0
	for i := 0; i < w.cfg.BatchSize; i++ {
		claimed, err := w.processOne(ctx)
		if err != nil {
			return processed, err
		}
		if !claimed {
			break
		}
		processed++
	}
	return processed, nil
}

// processOne claims a single deliverable row, attempts delivery, and
// records the outcome, all within one transaction.
func (w *WebhookWorker) processOne(ctx context.Context) (bool, error) {
	tx, err := w.transactor.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin outbox claim: %w", err)
	}
	defer tx.Rollback(ctx)

	events, err := w.outboxRepo.ClaimBatch(ctx, tx, 1, time.Now())
	if err != nil {
		return false, fmt.Errorf("claim outbox row: %w", err)
	}
	if len(events) == 0 {
		return false, tx.Commit(ctx)
	}
	event := events[0]

	business, err := w.businessRepo.GetByID(ctx, event.BusinessID)
	if err != nil {
		return false, fmt.Errorf("load business %s: %w", event.BusinessID, err)
	}
	if business == nil || !business.HasWebhook() {
		if err := w.outboxRepo.MarkDelivered(ctx, tx, event.ID, time.Now()); err != nil {
			return false, fmt.Errorf("mark outbox delivered: %w", err)
		}
		return true, tx.Commit(ctx)
	}

	deliverCtx, cancel := context.WithTimeout(ctx, w.cfg.RequestTimeout)
	deliverErr := w.dispatcher.Deliver(deliverCtx, &event, *business.WebhookURL, business.WebhookSecret)
	cancel()

	if deliverErr == nil {
		if err := w.outboxRepo.MarkDelivered(ctx, tx, event.ID, time.Now()); err != nil {
			return false, fmt.Errorf("mark outbox delivered: %w", err)
		}
		return true, tx.Commit(ctx)
	}

	attempts := event.Attempts + 1
	if attempts >= event.MaxAttempts {
		if err := w.outboxRepo.MarkFailed(ctx, tx, event.ID, attempts, deliverErr.Error()); err != nil {
			return false, fmt.Errorf("mark outbox failed: %w", err)
		}
	} else {
		next := time.Now().Add(backoffWithJitter(attempts, w.cfg.MaxBackoff))
		if err := w.outboxRepo.MarkRetrying(ctx, tx, event.ID, attempts, next, deliverErr.Error()); err != nil {
			return false, fmt.Errorf("mark outbox retrying: %w", err)
		}
	}
	return true, tx.Commit(ctx)
}

// backoffWithJitter computes 2^attempts seconds plus up to one second of
// jitter, capped at maxBackoff.
func backoffWithJitter(attempts int, maxBackoff time.Duration) time.Duration {
	seconds := math.Pow(2, float64(attempts))
	delay := time.Duration(seconds) * time.Second
	if delay > maxBackoff {
		delay = maxBackoff
	}
	jitter := time.Duration(rand.Int63n(int64(time.Second)))
	return delay + jitter
}

