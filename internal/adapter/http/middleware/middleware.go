package middleware

import (
	"net/http"
	"strings"
	"time"

	"payx-ledger/internal/core/ports"
	"payx-ledger/pkg/apperror"
	"payx-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// Context keys set by AuthGate for downstream handlers.
	CtxBusinessID = "business_id"
	CtxCredential = "credential"
)

// AuthGate authenticates the bearer credential and enforces its per-minute
// rate budget in a single pass, per §4.2's fused auth+rate gate.
func AuthGate(authSvc ports.AuthGateService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, apperror.ErrInvalidAPIKey())
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(authHeader, "Bearer ")

		result, err := authSvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if err := authSvc.CheckRateLimit(c.Request.Context(), result.Credential, time.Now()); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(CtxBusinessID, result.Business.ID)
		c.Set(CtxCredential, result.Credential)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "internal_error",
						"message": "an internal error occurred",
					},
				})
			}
		}()
		c.Next()
	}
}
