package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payx-ledger/config"
	pgStorage "payx-ledger/internal/adapter/storage/postgres"
	"payx-ledger/internal/service"
	"payx-ledger/internal/worker"
	"payx-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msg("starting payx-ledger webhook worker")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pool.Close()

	businessRepo := pgStorage.NewBusinessRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	sigSvc := service.NewHMACSignatureService()
	dispatcher := service.NewWebhookDispatcher(&http.Client{Timeout: cfg.Webhook.RequestTimeout}, sigSvc)

	w := worker.New(outboxRepo, businessRepo, dispatcher, transactor, worker.Config{
		BatchSize:      cfg.Webhook.BatchSize,
		PollInterval:   cfg.Webhook.PollInterval,
		RequestTimeout: cfg.Webhook.RequestTimeout,
		MaxAttempts:    cfg.Webhook.MaxAttempts,
		MaxBackoff:     cfg.Webhook.MaxBackoff,
	}, log)

	runCtx, cancel := context.WithCancel(ctx)
	go w.Run(runCtx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down webhook worker")

	cancel()
	w.Stop()
	time.Sleep(50 * time.Millisecond) // let the in-flight batch's log line flush

	log.Info().Msg("webhook worker exited")
}
