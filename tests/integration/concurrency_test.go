package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One token, many racing settlements: exactly one may win.
func TestConcurrentRedemption_SingleWinner(t *testing.T) {
	app := newTestApp(t)

	walletID, token := app.createWallet(t, 50000)

	const attempts = 16
	results := make([]int, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)

	for i := 0; i < attempts; i++ {
		go func(n int) {
			defer wg.Done()
			raw, _ := json.Marshal(map[string]any{
				"checkout_session_id": fmt.Sprintf("race-session-%d", n),
				"amount":              8980,
				"currency":            "BRL",
				"wallet_token":        token,
			})
			resp, err := http.Post(app.server.URL+"/api/v1/payments", "application/json", bytes.NewReader(raw))
			if err != nil {
				results[n] = 0
				return
			}
			resp.Body.Close()
			results[n] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, code := range results {
		switch code {
		case http.StatusCreated:
			wins++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, wins, "exactly one settlement may redeem the token")
	assert.Equal(t, attempts-1, conflicts)

	// Exactly one debit happened.
	resp, body := app.get(t, "/api/v1/wallets/"+walletID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(41020), data(t, body)["balance"])
}

// One completed transaction, many racing full refunds: the wallet is
// credited the original amount exactly once.
func TestConcurrentRefund_CappedAtOriginal(t *testing.T) {
	app := newTestApp(t)

	walletID, token := app.createWallet(t, 50000)

	resp, body := app.post(t, "/api/v1/payments", map[string]any{
		"checkout_session_id": "session-refund-race",
		"amount":              8980,
		"currency":            "BRL",
		"wallet_token":        token,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	txnID := data(t, body)["transaction_id"].(string)

	const attempts = 8
	results := make([]int, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)

	for i := 0; i < attempts; i++ {
		go func(n int) {
			defer wg.Done()
			raw, _ := json.Marshal(map[string]any{
				"transaction_id": txnID,
				"amount":         8980,
				"reason":         fmt.Sprintf("refund-race-%d", n),
			})
			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/payments/refund", bytes.NewReader(raw))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Admin-Api-Key", adminKey)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			results[n] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	wins, rejections := 0, 0
	for _, code := range results {
		switch code {
		case http.StatusOK:
			wins++
		case http.StatusBadRequest:
			rejections++
		}
	}
	assert.Equal(t, 1, wins, "exactly one refund may apply the remainder")
	assert.Equal(t, attempts-1, rejections)

	// The balance returned to its starting point and no further.
	resp, body = app.get(t, "/api/v1/wallets/"+walletID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(50000), data(t, body)["balance"])

	resp, body = app.get(t, "/api/v1/payments/"+txnID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d := data(t, body)
	assert.Equal(t, "REFUNDED", d["status"])
	assert.Equal(t, float64(8980), d["refunded_amount"])
}
