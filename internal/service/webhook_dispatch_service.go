package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"
)

// HTTPClient is the minimal surface the webhook dispatcher needs, kept
// narrow for test substitution.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// httpWebhookDispatcher implements ports.WebhookDispatcher: a single POST
// attempt against a tenant's webhook_url, signed per §4.6. Retry scheduling
// is the caller's (the worker's) responsibility, not this type's.
type httpWebhookDispatcher struct {
	httpClient HTTPClient
	sigSvc     ports.SignatureService
}

// NewWebhookDispatcher creates a new httpWebhookDispatcher.
func NewWebhookDispatcher(httpClient HTTPClient, sigSvc ports.SignatureService) ports.WebhookDispatcher {
	return &httpWebhookDispatcher{httpClient: httpClient, sigSvc: sigSvc}
}

// Deliver performs a single delivery attempt. A non-2xx response or
// transport error is returned as an error; the caller decides whether to
// retry.
func (d *httpWebhookDispatcher) Deliver(ctx context.Context, event *domain.OutboxEvent, targetURL, secret string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(event.Payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}

	signature := d.sigSvc.Sign(event.Payload, secret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Id", event.ID.String())
	req.Header.Set("X-Webhook-Timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set("X-Webhook-Signature", "sha256="+signature)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned HTTP %d", resp.StatusCode)
	}
	return nil
}
