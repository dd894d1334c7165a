package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodySize returns middleware that limits the request body size. This
// caps the JSON payload for every write endpoint (business onboarding,
// account opening, transaction submission, webhook configuration); once the
// limit is exceeded further reads of the body return an error. The
// middleware writes no response itself: the status is whatever the handler
// returns when its body read fails.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
