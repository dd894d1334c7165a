package handler

import (
	"payx-ledger/internal/adapter/http/middleware"
	"payx-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds every dependency SetupRouter wires into the engine.
type RouterDeps struct {
	AuthGateService ports.AuthGateService
	TransactionEngine ports.TransactionEngine
	BusinessRepo    ports.BusinessRepository
	CredentialRepo  ports.CredentialRepository
	AccountRepo     ports.AccountRepository
	TransactionRepo ports.TransactionRepository
	OutboxRepo      ports.OutboxRepository
	HashService     ports.HashService
	HealthCheckers  []ports.HealthChecker
	AuditRepo       ports.AuditRepository // nil disables audit logging
	Logger          zerolog.Logger
}

// SetupRouter assembles the Gin engine with the full v1 surface plus the
// ambient liveness/readiness/metrics endpoints.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	if deps.AuditRepo != nil {
		r.Use(middleware.AuditLog(deps.AuditRepo))
	}

	r.GET("/v1/health", Liveness())
	r.GET("/v1/ready", Readiness(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGate := middleware.AuthGate(deps.AuthGateService, deps.Logger)

	businessHandler := NewBusinessHandler(deps.BusinessRepo, deps.CredentialRepo, deps.HashService)
	accountHandler := NewAccountHandler(deps.AccountRepo, deps.TransactionRepo)
	transactionHandler := NewTransactionHandler(deps.TransactionEngine, deps.TransactionRepo)
	webhookHandler := NewWebhookHandler(deps.BusinessRepo, deps.OutboxRepo)

	v1 := r.Group("/v1")

	// Tenant onboarding is unauthenticated; everything else requires the
	// credential minted by it.
	v1.POST("/businesses", businessHandler.CreateBusiness)

	businesses := v1.Group("/businesses", authGate)
	{
		businesses.GET("/:id", businessHandler.GetBusiness)
		businesses.PUT("/:id", businessHandler.UpdateBusiness)
	}

	accounts := v1.Group("/accounts", authGate)
	{
		accounts.POST("", accountHandler.CreateAccount)
		accounts.GET("/:id", accountHandler.GetAccount)
		accounts.GET("/:id/transactions", accountHandler.ListTransactions)
	}

	transactions := v1.Group("/transactions", authGate)
	{
		transactions.POST("", transactionHandler.SubmitTransaction)
		transactions.GET("/:id", transactionHandler.GetTransaction)
	}

	webhooks := v1.Group("/webhooks", authGate)
	{
		webhooks.POST("/endpoints", webhookHandler.CreateEndpoint)
		webhooks.PUT("/endpoints/:id", webhookHandler.UpdateEndpoint)
		webhooks.DELETE("/endpoints/:id", webhookHandler.DeleteEndpoint)
		webhooks.GET("/deliveries", webhookHandler.ListDeliveries)
		webhooks.POST("/deliveries/:id/retry", webhookHandler.RetryDelivery)
	}

	return r
}
