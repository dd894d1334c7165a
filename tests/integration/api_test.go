package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "payx-ledger/internal/adapter/http/handler"
	"payx-ledger/internal/adapter/http/dto"
	"payx-ledger/internal/service"
	"payx-ledger/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the full HTTP surface against in-memory repositories, the
// same composition SetupRouter uses against Postgres in production.
type testApp struct {
	router *gin.Engine
}

func newTestApp() *testApp {
	log := logger.New("error", false)

	businessRepo := newInMemoryBusinessRepo()
	credentialRepo := newInMemoryCredentialRepo()
	accountRepo := newInMemoryAccountRepo()
	txRepo := newInMemoryTransactionRepo()
	outboxRepo := newInMemoryOutboxRepo()
	rateWindowRepo := newInMemoryRateWindowRepo()
	idempCache := newInMemoryIdempotencyCache()
	transactor := newInMemoryTransactor()

	hashSvc := service.NewArgon2HashService()
	authGate := service.NewAuthGateService(credentialRepo, businessRepo, rateWindowRepo, hashSvc, log)
	engine := service.NewTransactionEngine(accountRepo, txRepo, outboxRepo, idempCache, transactor, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthGateService:   authGate,
		TransactionEngine: engine,
		BusinessRepo:      businessRepo,
		CredentialRepo:    credentialRepo,
		AccountRepo:       accountRepo,
		TransactionRepo:   txRepo,
		OutboxRepo:        outboxRepo,
		HashService:       hashSvc,
		Logger:            log,
	})

	return &testApp{router: router}
}

func (a *testApp) do(method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// onboardBusiness registers a new tenant and returns the decoded onboarding
// response, which carries the raw credential once.
func (a *testApp) onboardBusiness(t *testing.T, name, email string) dto.BusinessResponse {
	t.Helper()
	rec := a.do(http.MethodPost, "/v1/businesses", dto.CreateBusinessRequest{
		Name:  name,
		Email: email,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.BusinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Credential)
	return resp
}

// openAccount opens an account for the given bearer credential and returns
// the decoded response.
func (a *testApp) openAccount(t *testing.T, bearer, currency, initialBalance string) dto.AccountResponse {
	t.Helper()
	var initial *string
	if initialBalance != "" {
		initial = &initialBalance
	}
	rec := a.do(http.MethodPost, "/v1/accounts", dto.CreateAccountRequest{
		Currency:       currency,
		InitialBalance: initial,
	}, bearer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp()

	rec := app.do(http.MethodGet, "/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/v1/ready", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIntegration_OnboardBusiness(t *testing.T) {
	app := newTestApp()

	business := app.onboardBusiness(t, "Acme Corp", "billing@acme.test")

	assert.NotEmpty(t, business.ID)
	assert.Equal(t, "Acme Corp", business.Name)
	assert.NotEmpty(t, business.WebhookSecret)
	assert.Contains(t, business.Credential, "payx_")

	// Reading the business back never re-exposes the credential or secret.
	rec := app.do(http.MethodGet, "/v1/businesses/"+business.ID, nil, business.Credential)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var readBack dto.BusinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &readBack))
	assert.Empty(t, readBack.Credential)
	assert.Empty(t, readBack.WebhookSecret)
}

func TestIntegration_Unauthorized_MissingBearer(t *testing.T) {
	app := newTestApp()

	rec := app.do(http.MethodPost, "/v1/accounts", dto.CreateAccountRequest{Currency: "USD"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIntegration_Unauthorized_WrongCredential(t *testing.T) {
	app := newTestApp()
	app.onboardBusiness(t, "Acme Corp", "wrong-cred@acme.test")

	rec := app.do(http.MethodPost, "/v1/accounts", dto.CreateAccountRequest{Currency: "USD"}, "payx_not-a-real-credential")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIntegration_CreateAccountAndCredit(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "credit@acme.test")

	account := app.openAccount(t, business.Credential, "USD", "0")
	assert.Equal(t, "0.0000", account.Balance)

	rec := app.do(http.MethodPost, "/v1/transactions", dto.SubmitTransactionRequest{
		Type:                 "credit",
		DestinationAccountID: &account.ID,
		Amount:               "100.00",
		Currency:             "USD",
	}, business.Credential)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var txn dto.TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txn))
	assert.Equal(t, "completed", txn.Status)
	assert.Equal(t, "100.0000", txn.Amount)

	rec = app.do(http.MethodGet, "/v1/accounts/"+account.ID, nil, business.Credential)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "100.0000", updated.Balance)
}

func TestIntegration_DebitInsufficientFunds(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "insufficient@acme.test")
	account := app.openAccount(t, business.Credential, "USD", "10.00")

	rec := app.do(http.MethodPost, "/v1/transactions", dto.SubmitTransactionRequest{
		Type:            "debit",
		SourceAccountID: &account.ID,
		Amount:          "50.00",
		Currency:        "USD",
	}, business.Credential)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "insufficient_funds", errBody["code"])
}

func TestIntegration_Transfer(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "transfer@acme.test")
	from := app.openAccount(t, business.Credential, "USD", "200.00")
	to := app.openAccount(t, business.Credential, "USD", "0")

	rec := app.do(http.MethodPost, "/v1/transactions", dto.SubmitTransactionRequest{
		Type:                 "transfer",
		SourceAccountID:      &from.ID,
		DestinationAccountID: &to.ID,
		Amount:               "75.00",
		Currency:             "USD",
	}, business.Credential)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/v1/accounts/"+from.ID, nil, business.Credential)
	var fromAcc dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fromAcc))
	assert.Equal(t, "125.0000", fromAcc.Balance)

	rec = app.do(http.MethodGet, "/v1/accounts/"+to.ID, nil, business.Credential)
	var toAcc dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toAcc))
	assert.Equal(t, "75.0000", toAcc.Balance)
}

func TestIntegration_IdempotentReplay(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "idempotent@acme.test")
	account := app.openAccount(t, business.Credential, "USD", "0")

	submit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString(fmt.Sprintf(
			`{"type":"credit","destination_account_id":"%s","amount":"25.00","currency":"USD"}`, account.ID)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+business.Credential)
		req.Header.Set("Idempotency-Key", "order-42")
		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, req)
		return rec
	}

	first := submit()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	var firstTxn dto.TransactionResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstTxn))

	second := submit()
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())
	var secondTxn dto.TransactionResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondTxn))

	assert.Equal(t, firstTxn.ID, secondTxn.ID)

	rec := app.do(http.MethodGet, "/v1/accounts/"+account.ID, nil, business.Credential)
	var acc dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acc))
	assert.Equal(t, "25.0000", acc.Balance, "replayed request must not double-post")
}

func TestIntegration_IdempotencyConflict_SameKeyDifferentBody(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "conflict@acme.test")
	account := app.openAccount(t, business.Credential, "USD", "0")

	req1 := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString(fmt.Sprintf(
		`{"type":"credit","destination_account_id":"%s","amount":"25.00","currency":"USD"}`, account.ID)))
	req1.Header.Set("Content-Type", "application/json")
	req1.Header.Set("Authorization", "Bearer "+business.Credential)
	req1.Header.Set("Idempotency-Key", "order-dup")
	rec1 := httptest.NewRecorder()
	app.router.ServeHTTP(rec1, req1)
	require.Equal(t, http.StatusCreated, rec1.Code, rec1.Body.String())

	req2 := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString(fmt.Sprintf(
		`{"type":"credit","destination_account_id":"%s","amount":"99.00","currency":"USD"}`, account.ID)))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("Authorization", "Bearer "+business.Credential)
	req2.Header.Set("Idempotency-Key", "order-dup")
	rec2 := httptest.NewRecorder()
	app.router.ServeHTTP(rec2, req2)

	assert.Equal(t, http.StatusConflict, rec2.Code)
}

func TestIntegration_CurrencyMismatch(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "currency@acme.test")
	account := app.openAccount(t, business.Credential, "USD", "0")

	rec := app.do(http.MethodPost, "/v1/transactions", dto.SubmitTransactionRequest{
		Type:                 "credit",
		DestinationAccountID: &account.ID,
		Amount:               "10.00",
		Currency:             "EUR",
	}, business.Credential)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntegration_CrossTenantAccountAccessDenied(t *testing.T) {
	app := newTestApp()
	businessA := app.onboardBusiness(t, "Tenant A", "tenant-a@acme.test")
	businessB := app.onboardBusiness(t, "Tenant B", "tenant-b@acme.test")

	accountA := app.openAccount(t, businessA.Credential, "USD", "100.00")

	rec := app.do(http.MethodGet, "/v1/accounts/"+accountA.ID, nil, businessB.Credential)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIntegration_ListAccountTransactions(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "listtx@acme.test")
	account := app.openAccount(t, business.Credential, "USD", "0")

	for i := 0; i < 3; i++ {
		rec := app.do(http.MethodPost, "/v1/transactions", dto.SubmitTransactionRequest{
			Type:                 "credit",
			DestinationAccountID: &account.ID,
			Amount:               "10.00",
			Currency:             "USD",
		}, business.Credential)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := app.do(http.MethodGet, "/v1/accounts/"+account.ID+"/transactions", nil, business.Credential)
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.TransactionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Items, 3)
}

func TestIntegration_ConfigureWebhookEndpoint(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "webhook@acme.test")

	rec := app.do(http.MethodPost, "/v1/webhooks/endpoints", dto.ConfigureWebhookRequest{
		WebhookURL: "https://example.test/webhooks/payx",
	}, business.Credential)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.WebhookEndpointResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://example.test/webhooks/payx", resp.WebhookURL)

	// A second create is rejected; updating the existing endpoint requires PUT.
	rec = app.do(http.MethodPost, "/v1/webhooks/endpoints", dto.ConfigureWebhookRequest{
		WebhookURL: "https://example.test/webhooks/other",
	}, business.Credential)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPut, "/v1/webhooks/endpoints/"+business.ID, dto.ConfigureWebhookRequest{
		WebhookURL: "https://example.test/webhooks/updated",
	}, business.Credential)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://example.test/webhooks/updated", resp.WebhookURL)

	rec = app.do(http.MethodDelete, "/v1/webhooks/endpoints/"+business.ID, nil, business.Credential)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestIntegration_ListWebhookDeliveries(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Acme Corp", "deliveries@acme.test")
	account := app.openAccount(t, business.Credential, "USD", "0")

	rec := app.do(http.MethodPost, "/v1/transactions", dto.SubmitTransactionRequest{
		Type:                 "credit",
		DestinationAccountID: &account.ID,
		Amount:               "5.00",
		Currency:             "USD",
	}, business.Credential)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodGet, "/v1/webhooks/deliveries", nil, business.Credential)
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.WebhookDeliveryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "pending", list.Items[0].Status)
}

func TestIntegration_RateLimitExceeded(t *testing.T) {
	app := newTestApp()
	business := app.onboardBusiness(t, "Rate Limited Co", "ratelimited@acme.test")

	// domain.DefaultRateLimitPerMinute is 600; exceed it within the same window.
	var last *httptest.ResponseRecorder
	for i := 0; i < 601; i++ {
		last = app.do(http.MethodGet, "/v1/businesses/"+business.ID, nil, business.Credential)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
}
