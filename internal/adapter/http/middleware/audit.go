package middleware

import (
	"encoding/json"
	"time"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that records successful write
// operations against the ambient audit trail.
func AuditLog(auditRepo ports.AuditRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		switch c.Request.Method {
		case "GET", "HEAD", "OPTIONS":
			return
		}

		action, resourceType := mapPathToAction(c.Request.URL.Path, c.Request.Method)
		if action == "" {
			return
		}

		var businessID *uuid.UUID
		if bid, exists := c.Get(CtxBusinessID); exists {
			if id, ok := bid.(uuid.UUID); ok {
				businessID = &id
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		_ = auditRepo.Create(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			BusinessID:   businessID,
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string) {
	switch {
	case path == "/v1/businesses" && method == "POST":
		return domain.AuditActionCreateBusiness, "business"
	case isBusinessIDPath(path) && method == "PUT":
		return domain.AuditActionUpdateBusiness, "business"
	case path == "/v1/accounts" && method == "POST":
		return domain.AuditActionCreateAccount, "account"
	case path == "/v1/transactions" && method == "POST":
		return domain.AuditActionSubmitTransaction, "transaction"
	case isWebhookEndpointPath(path) && (method == "POST" || method == "PUT"):
		return domain.AuditActionConfigureWebhook, "webhook_endpoint"
	case isWebhookRetryPath(path) && method == "POST":
		return domain.AuditActionRetryWebhook, "webhook_delivery"
	}
	return "", ""
}

func isBusinessIDPath(path string) bool {
	return matchesSegments(path, "v1", "businesses", "*")
}

func isWebhookEndpointPath(path string) bool {
	return matchesSegments(path, "v1", "webhooks", "endpoints") ||
		matchesSegments(path, "v1", "webhooks", "endpoints", "*")
}

func isWebhookRetryPath(path string) bool {
	return matchesSegments(path, "v1", "webhooks", "deliveries", "*", "retry")
}

func matchesSegments(path string, want ...string) bool {
	segs := splitPath(path)
	if len(segs) != len(want) {
		return false
	}
	for i, w := range want {
		if w == "*" {
			continue
		}
		if segs[i] != w {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	var segs []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segs = append(segs, path[start:i])
			}
			start = i + 1
		}
	}
	return segs
}
