package userwallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agent-settlement/config"
	"agent-settlement/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSigner struct{}

func (staticSigner) SignRequest(method, path string, payload []byte) (map[string]string, error) {
	return map[string]string{
		"request-signature": "sig-for-" + method + path,
		"ucp-key-id":        "key-test",
	}, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.UserAgentConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, staticSigner{}, zerolog.Nop())
}

func TestClient_ProcessPayment_Success(t *testing.T) {
	var got debitRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, debitPath, r.URL.Path)
		assert.Equal(t, "sig-for-POST"+debitPath, r.Header.Get("request-signature"))
		assert.Equal(t, "key-test", r.Header.Get("ucp-key-id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(ports.PersonalDebitResult{
			Success:       true,
			TransactionID: "ua_txn_1",
			NewBalance:    7500,
		})
	})

	result, err := client.ProcessPayment(context.Background(), ports.PersonalDebitRequest{
		Token:             "wtk_abc123",
		Amount:            2500,
		CheckoutSessionID: "checkout-1",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ua_txn_1", result.TransactionID)
	assert.Equal(t, int64(7500), result.NewBalance)
	assert.Equal(t, "wtk_abc123", got.Token)
	assert.Equal(t, int64(2500), got.Amount)
}

func TestClient_ProcessPayment_BusinessRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ports.PersonalDebitResult{
			Success: false,
			Error:   "token_already_used",
		})
	})

	result, err := client.ProcessPayment(context.Background(), ports.PersonalDebitRequest{
		Token:             "wtk_spent",
		Amount:            100,
		CheckoutSessionID: "checkout-2",
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "token_already_used", result.Error)
}

func TestClient_ProcessPayment_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	result, err := client.ProcessPayment(context.Background(), ports.PersonalDebitRequest{
		Token:             "wtk_abc",
		Amount:            100,
		CheckoutSessionID: "checkout-3",
	})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestClient_ProcessPayment_TransportError(t *testing.T) {
	client := NewClient(config.UserAgentConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil, zerolog.Nop())

	result, err := client.ProcessPayment(context.Background(), ports.PersonalDebitRequest{
		Token:             "wtk_abc",
		Amount:            100,
		CheckoutSessionID: "checkout-4",
	})
	assert.Error(t, err)
	assert.Nil(t, result)
}
