// Package userwallet is the HTTP client for the delegated personal-wallet
// service. Tokens in the wtk_ namespace are settled there, not locally.
package userwallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"agent-settlement/config"
	"agent-settlement/internal/core/ports"

	"github.com/rs/zerolog"
)

const debitPath = "/wallet/debit"

// Client implements ports.PersonalWalletClient over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	signer  ports.RequestSigner
	log     zerolog.Logger
}

// NewClient builds a client for the configured personal-wallet service.
// The signer may be nil when the downstream does not verify request signatures.
func NewClient(cfg config.UserAgentConfig, signer ports.RequestSigner, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		signer:  signer,
		log:     log.With().Str("component", "userwallet_client").Logger(),
	}
}

type debitRequest struct {
	Token             string `json:"token"`
	Amount            int64  `json:"amount"`
	Description       string `json:"description,omitempty"`
	CheckoutSessionID string `json:"checkout_session_id"`
}

// ProcessPayment forwards a wtk_ debit to the personal-wallet service. A
// transport or server-side failure is returned as an error; a business
// rejection comes back as Success=false with the remote error code.
func (c *Client) ProcessPayment(ctx context.Context, req ports.PersonalDebitRequest) (*ports.PersonalDebitResult, error) {
	body, err := json.Marshal(debitRequest{
		Token:             req.Token,
		Amount:            req.Amount,
		Description:       req.Description,
		CheckoutSessionID: req.CheckoutSessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal debit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+debitPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build debit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if c.signer != nil {
		headers, err := c.signer.SignRequest(http.MethodPost, debitPath, body)
		if err != nil {
			return nil, fmt.Errorf("sign debit request: %w", err)
		}
		for k, v := range headers {
			httpReq.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("personal wallet call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("personal wallet returned %d", resp.StatusCode)
	}

	var result ports.PersonalDebitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode debit response: %w", err)
	}

	c.log.Debug().
		Str("checkout_session_id", req.CheckoutSessionID).
		Bool("success", result.Success).
		Str("remote_error", result.Error).
		Msg("personal wallet debit completed")

	return &result, nil
}
