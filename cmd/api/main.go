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
	httpHandler "payx-ledger/internal/adapter/http/handler"
	pgStorage "payx-ledger/internal/adapter/storage/postgres"
	redisStorage "payx-ledger/internal/adapter/storage/redis"
	"payx-ledger/internal/core/ports"
	"payx-ledger/internal/service"
	"payx-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("addr", cfg.Server.BindAddress).
		Msg("starting payx-ledger API")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	businessRepo := pgStorage.NewBusinessRepo(pool)
	credentialRepo := pgStorage.NewCredentialRepo(pool)
	accountRepo := pgStorage.NewAccountRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	outboxRepo := pgStorage.NewOutboxRepo(pool)
	rateWindowRepo := pgStorage.NewRateWindowRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)
	transactor := pgStorage.NewTransactor(pool)

	idempCache := redisStorage.NewIdempotencyCache(rdb)

	hashSvc := service.NewArgon2HashService()
	authGateSvc := service.NewAuthGateService(credentialRepo, businessRepo, rateWindowRepo, hashSvc, log)
	transactionEngine := service.NewTransactionEngine(accountRepo, txRepo, outboxRepo, idempCache, transactor, log)

	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthGateService:   authGateSvc,
		TransactionEngine: transactionEngine,
		BusinessRepo:      businessRepo,
		CredentialRepo:    credentialRepo,
		AccountRepo:       accountRepo,
		TransactionRepo:   txRepo,
		OutboxRepo:        outboxRepo,
		HashService:       hashSvc,
		HealthCheckers:    []ports.HealthChecker{pgHealth, redisHealth},
		AuditRepo:         auditRepo,
		Logger:            log,
	})

	srv := &http.Server{
		Addr:    cfg.Server.BindAddress,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.BindAddress).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
