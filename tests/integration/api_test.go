package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agent-settlement/config"
	httpHandler "agent-settlement/internal/adapter/http/handler"
	memStorage "agent-settlement/internal/adapter/storage/memory"
	redisStorage "agent-settlement/internal/adapter/storage/redis"
	"agent-settlement/internal/adapter/userwallet"
	"agent-settlement/internal/core/ports"
	"agent-settlement/internal/service"
	"agent-settlement/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMerchant = "Loja Sincera"
	adminKey     = "test-admin-key"
)

// testApp builds the full application stack: real services and HTTP layer,
// in-process ledger storage and miniredis-backed nonce/idempotency stores.
type testApp struct {
	server      *httptest.Server
	personalSrv *httptest.Server
	redis       *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	nonceStore := redisStorage.NewNonceStore(rdb)
	idempCache := redisStorage.NewIdempotencyCache(rdb)

	store := memStorage.NewStore()
	log := logger.New("debug", false)

	merchantKey, err := service.NewKeyManager()
	require.NoError(t, err)
	userKey, err := service.NewKeyManager()
	require.NoError(t, err)

	ring := service.NewKeyRing()
	ring.Register(merchantKey)
	ring.Register(userKey)

	codec := service.NewMandateCodec()
	hasher := service.NewCanonicalHasher()
	builder := service.NewMandateBuilder(codec, hasher, merchantKey, userKey, testMerchant, log)
	validator := service.NewMandateValidator(codec, hasher, ring, nonceStore, log)
	verifier := service.NewArgon2KeyVerifier()

	adminHash, err := verifier.Hash(adminKey)
	require.NoError(t, err)

	ledger := service.NewLedgerService(store.Wallets(), store.Tokens(), store.Transactions(), store.Transactor(), log)

	// Stub personal-wallet service: accepts wtk_personal_ok once.
	used := map[string]bool{}
	personalSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token  string `json:"token"`
			Amount int64  `json:"amount"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		switch {
		case req.Token != "wtk_personal_ok":
			json.NewEncoder(w).Encode(ports.PersonalDebitResult{Success: false, Error: "unknown_token"})
		case used[req.Token]:
			json.NewEncoder(w).Encode(ports.PersonalDebitResult{Success: false, Error: "token_already_used"})
		default:
			used[req.Token] = true
			json.NewEncoder(w).Encode(ports.PersonalDebitResult{
				Success:       true,
				TransactionID: "ua_txn_1",
				NewBalance:    10000 - req.Amount,
			})
		}
	}))
	t.Cleanup(personalSrv.Close)

	personalClient := userwallet.NewClient(config.UserAgentConfig{BaseURL: personalSrv.URL}, service.NewRequestSigner(userKey), log)
	settlementSvc := service.NewSettlementService(ledger, validator, personalClient, idempCache, testMerchant, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  settlementSvc,
		Ledger:         ledger,
		Builder:        builder,
		Validator:      validator,
		KeyRing:        ring,
		APIKeyVerifier: verifier,
		AdminKeyHash:   adminHash,
		Logger:         log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testApp{server: srv, personalSrv: personalSrv, redis: mr}
}

func (a *testApp) post(t *testing.T, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func data(t *testing.T, decoded map[string]any) map[string]any {
	t.Helper()
	d, ok := decoded["data"].(map[string]any)
	require.True(t, ok, "expected data envelope, got %v", decoded)
	return d
}

// createWallet opens an account and issues one payment token.
func (a *testApp) createWallet(t *testing.T, balance int64) (walletID, token string) {
	t.Helper()
	resp, body := a.post(t, "/api/v1/wallets", map[string]any{
		"owner_id":        "user-shopper-1",
		"initial_balance": balance,
		"currency":        "BRL",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	walletID = data(t, body)["wallet_id"].(string)

	resp, body = a.post(t, fmt.Sprintf("/api/v1/wallets/%s/tokens", walletID), map[string]any{
		"owner_id": "user-shopper-1",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token = data(t, body)["token"].(string)
	return walletID, token
}

// buildFlow produces the signed cart and payment mandates over HTTP.
func (a *testApp) buildFlow(t *testing.T) (cart, payment map[string]any) {
	t.Helper()
	resp, body := a.post(t, "/api/v1/mandates/flow", map[string]any{
		"description": "Buy two books under 100 BRL",
		"cart": map[string]any{
			"items": []map[string]any{
				{"label": "Dom Casmurro", "unit_price": 2990, "quantity": 1},
				{"label": "Grande Sertao: Veredas", "unit_price": 5990, "quantity": 1},
			},
			"currency": "BRL",
		},
		"payment": map[string]any{
			"payment_method": "CARD",
			"payer_name":     "Maria Silva",
		},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	d := data(t, body)
	return d["cart_mandate"].(map[string]any), d["payment_mandate"].(map[string]any)
}

func TestEndToEnd_MandateFlowAndSettlement(t *testing.T) {
	app := newTestApp(t)

	walletID, token := app.createWallet(t, 50000)
	cart, payment := app.buildFlow(t)

	resp, body := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-e2e-1",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
		"payment_mandate":     payment,
		"cart_mandate":        cart,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	d := data(t, body)
	assert.Equal(t, true, d["success"])
	assert.Equal(t, "COMPLETED", d["status"])
	assert.Equal(t, float64(41020), d["new_balance"])
	txnID := d["transaction_id"].(string)

	// Balance reflects the debit
	resp, body = app.get(t, "/api/v1/wallets/"+walletID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(41020), data(t, body)["balance"])

	// Transaction is queryable
	resp, body = app.get(t, "/api/v1/payments/"+txnID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "COMPLETED", data(t, body)["status"])
	assert.Equal(t, true, data(t, body)["mandate_valid"])

	// Same token again, different session: already redeemed
	resp, body = app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-e2e-2",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "WAL_002", body["error_code"])
}

func TestEndToEnd_IdempotentReplay(t *testing.T) {
	app := newTestApp(t)

	_, token := app.createWallet(t, 50000)

	first, firstBody := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-replay",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	require.Equal(t, http.StatusCreated, first.StatusCode)
	txnID := data(t, firstBody)["transaction_id"].(string)

	// Replaying the same checkout session returns the cached result, the
	// consumed token notwithstanding.
	second, secondBody := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-replay",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	require.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, txnID, data(t, secondBody)["transaction_id"])
}

func TestEndToEnd_InsufficientBalance(t *testing.T) {
	app := newTestApp(t)

	_, token := app.createWallet(t, 5000)

	resp, body := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-poor",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "WAL_003", body["error_code"])

	// The failed debit still leaves the token usable for a smaller amount.
	resp, respBody := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-poor-2",
		"amount":              4000,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1000), data(t, respBody)["new_balance"])
}

func TestEndToEnd_TamperedCartRejected(t *testing.T) {
	app := newTestApp(t)

	_, token := app.createWallet(t, 50000)
	cart, payment := app.buildFlow(t)

	// Lower one line-item price after the merchant signed the cart.
	contents := cart["contents"].(map[string]any)
	items := contents["line_items"].([]any)
	items[0].(map[string]any)["amount"].(map[string]any)["minor_units"] = float64(1)

	resp, body := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-tamper",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
		"payment_mandate":     payment,
		"cart_mandate":        cart,
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MAN_006", body["error_code"])

	// The wallet was never debited.
	resp, body = app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-after-tamper",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(41020), data(t, body)["new_balance"])
}

func TestEndToEnd_RefundFlow(t *testing.T) {
	app := newTestApp(t)
	adminHeaders := map[string]string{"X-Admin-Api-Key": adminKey}

	walletID, token := app.createWallet(t, 50000)

	resp, body := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-refund",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txnID := data(t, body)["transaction_id"].(string)

	// Partial refund
	resp, body = app.post(t, "/api/v1/payments/refund", map[string]any{
		"transaction_id": txnID,
		"amount":         3000,
		"reason":         "one book returned",
	}, adminHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d := data(t, body)
	assert.Equal(t, float64(3000), d["refunded_amount"])
	assert.Equal(t, "PARTIALLY_REFUNDED", d["status"])

	// Over-ask refund is clamped to the remainder
	resp, body = app.post(t, "/api/v1/payments/refund", map[string]any{
		"transaction_id": txnID,
		"amount":         9000,
		"reason":         "order cancelled",
	}, adminHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d = data(t, body)
	assert.Equal(t, float64(5980), d["refunded_amount"])
	assert.Equal(t, "REFUNDED", d["status"])

	// Balance restored in full
	resp, body = app.get(t, "/api/v1/wallets/"+walletID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(50000), data(t, body)["balance"])

	// Fully refunded transactions reject further refunds
	resp, body = app.post(t, "/api/v1/payments/refund", map[string]any{
		"transaction_id": txnID,
		"amount":         100,
		"reason":         "again",
	}, adminHeaders)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PAY_003", body["error_code"])
}

func TestEndToEnd_RefundRequiresAdminKey(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.post(t, "/api/v1/payments/refund", map[string]any{
		"transaction_id": "psp_txn_whatever",
		"reason":         "no credentials",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_001", body["error_code"])
}

func TestEndToEnd_PersonalWalletDelegation(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-personal",
		"amount":              2500,
		"currency":            "BRL",
		"wallet_token":        "wtk_personal_ok",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	d := data(t, body)
	assert.Equal(t, true, d["success"])
	assert.Equal(t, "personal_wallet", d["wallet_source"])
	assert.Equal(t, float64(7500), d["new_balance"])

	// Second use is rejected by the remote service
	resp, body = app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-personal-2",
		"amount":              2500,
		"currency":            "BRL",
		"wallet_token":        "wtk_personal_ok",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "WAL_002", body["error_code"])
}

func TestEndToEnd_UnknownTokenNamespace(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-ns",
		"amount":              100,
		"currency":            "BRL",
		"wallet_token":        "xtk_who_knows",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "WAL_001", body["error_code"])
}

func TestEndToEnd_JWKSAndHealth(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/.well-known/jwks.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	keys := body["keys"].([]any)
	require.Len(t, keys, 2)
	for _, k := range keys {
		jwk := k.(map[string]any)
		assert.Equal(t, "OKP", jwk["kty"])
		assert.Equal(t, "EdDSA", jwk["alg"])
	}

	resp, body = app.get(t, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}
