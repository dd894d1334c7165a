package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// fireAndForget runs fn on its own goroutine with a fresh, detached
// deadline-bound context, logging but never propagating its error. Used for
// updates that must not add latency to the request path and whose failure
// is immaterial to the caller (e.g. a credential's last_used_at).
func fireAndForget(log zerolog.Logger, op string, timeout time.Duration, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warn().Err(err).Str("op", op).Msg("best-effort async operation failed")
		}
	}()
}
