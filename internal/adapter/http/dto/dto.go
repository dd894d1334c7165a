package dto

// CreateBusinessRequest is the request body for tenant onboarding.
type CreateBusinessRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=200"`
	Email      string  `json:"email" binding:"required,email"`
	WebhookURL *string `json:"webhook_url,omitempty" binding:"omitempty,safe_url"`
}

// UpdateBusinessRequest is the request body for tenant profile updates.
type UpdateBusinessRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	WebhookURL *string `json:"webhook_url,omitempty" binding:"omitempty,safe_url"`
}

// BusinessResponse is the response body for a business resource. Credential
// and webhook_secret are populated only on the creation response, never on
// subsequent reads.
type BusinessResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	WebhookURL    *string `json:"webhook_url,omitempty"`
	Credential    string  `json:"credential,omitempty"`
	WebhookSecret string  `json:"webhook_secret,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// CreateAccountRequest is the request body for opening a ledger account.
type CreateAccountRequest struct {
	Currency       string  `json:"currency" binding:"required,len=3"`
	InitialBalance *string `json:"initial_balance,omitempty"`
}

// AccountResponse is the response body for an account resource.
type AccountResponse struct {
	ID               string `json:"id"`
	BusinessID       string `json:"business_id"`
	Currency         string `json:"currency"`
	Balance          string `json:"balance"`
	AvailableBalance string `json:"available_balance"`
	Version          int64  `json:"version"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// AccountListResponse wraps a cursor-paginated page of accounts.
type AccountListResponse struct {
	Items      []AccountResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// SubmitTransactionRequest is the request body for the core write endpoint.
// Type discriminates which of SourceAccountID/DestinationAccountID are
// required, enforced by the service layer rather than by binding tags.
type SubmitTransactionRequest struct {
	Type                 string  `json:"type" binding:"required,oneof=credit debit transfer"`
	SourceAccountID      *string `json:"source_account_id,omitempty" binding:"omitempty,uuid"`
	DestinationAccountID *string `json:"destination_account_id,omitempty" binding:"omitempty,uuid"`
	Amount               string  `json:"amount" binding:"required"`
	Currency             string  `json:"currency" binding:"required,len=3"`
}

// TransactionResponse is the response body for a transaction resource.
type TransactionResponse struct {
	ID                   string  `json:"id"`
	BusinessID           string  `json:"business_id"`
	IdempotencyKey       *string `json:"idempotency_key,omitempty"`
	Type                 string  `json:"type"`
	Status               string  `json:"status"`
	SourceAccountID      *string `json:"source_account_id,omitempty"`
	DestinationAccountID *string `json:"destination_account_id,omitempty"`
	Amount               string  `json:"amount"`
	Currency             string  `json:"currency"`
	CreatedAt            string  `json:"created_at"`
	CompletedAt          *string `json:"completed_at,omitempty"`
}

// TransactionListResponse wraps a cursor-paginated page of transactions.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// ConfigureWebhookRequest sets or replaces a tenant's delivery target.
type ConfigureWebhookRequest struct {
	WebhookURL string `json:"webhook_url" binding:"required,safe_url"`
}

// WebhookEndpointResponse reflects the configured delivery target.
type WebhookEndpointResponse struct {
	BusinessID string `json:"business_id"`
	WebhookURL string `json:"webhook_url"`
}

// WebhookDeliveryResponse is one outbox row as exposed to operators.
type WebhookDeliveryResponse struct {
	ID            string  `json:"id"`
	EventType     string  `json:"event_type"`
	Status        string  `json:"status"`
	Attempts      int     `json:"attempts"`
	MaxAttempts   int     `json:"max_attempts"`
	NextAttemptAt string  `json:"next_attempt_at"`
	LastError     *string `json:"last_error,omitempty"`
	ProcessedAt   *string `json:"processed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// WebhookDeliveryListResponse wraps an offset-paginated page of deliveries.
type WebhookDeliveryListResponse struct {
	Items []WebhookDeliveryResponse `json:"items"`
	Total int64                     `json:"total"`
}
