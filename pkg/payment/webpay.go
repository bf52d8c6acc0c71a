package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config wires the gateway client explicitly: base URL of the payment
// service and an optional bearer-token provider. No package-level state.
type Config struct {
	BaseURL       string
	TokenProvider func() string
	HTTPClient    *http.Client
}

// Client talks to the Webpay-style payment gateway.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{cfg: cfg}
}

type CreateTransactionRequest struct {
	Amount    float64 `json:"amount"`
	SessionID string  `json:"session_id"`
	BuyOrder  string  `json:"buy_order"`
	ReturnURL string  `json:"return_url"`
}

// CreateTransactionResponse carries the redirect target; the storefront
// form-POSTs token_ws to URL to hand the browser to the gateway.
type CreateTransactionResponse struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// Confirmation is the gateway's answer to a confirm call. The order id
// may arrive under either name depending on the gateway deployment.
type Confirmation struct {
	Status   string         `json:"status"`
	BuyOrder string         `json:"buy_order"`
	OrderID  int64          `json:"orderId,omitempty"`
	PedidoID int64          `json:"pedido_id,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// IsApprovedStatus reports whether a confirmation status counts as a
// successful payment. The gateway has answered with all three spellings.
func IsApprovedStatus(status string) bool {
	switch status {
	case "APPROVED", "success", "AUTHORIZED":
		return true
	}
	return false
}

// CreateTransaction registers a pending transaction with the gateway.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*CreateTransactionResponse, error) {
	var resp CreateTransactionResponse
	if err := c.post(ctx, "/api/transbank/create", req, &resp); err != nil {
		return nil, err
	}
	if resp.URL == "" || resp.Token == "" {
		return nil, fmt.Errorf("gateway returned incomplete transaction data")
	}
	return &resp, nil
}

// Confirm commits the transaction identified by the return token. The
// token is single-use; callers must not retry a failed confirm.
func (c *Client) Confirm(ctx context.Context, tokenWS string) (*Confirmation, error) {
	body := map[string]string{"token_ws": tokenWS}
	var conf Confirmation
	if err := c.post(ctx, "/api/transbank/confirm", body, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.TokenProvider != nil {
		if token := c.cfg.TokenProvider(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &detail) == nil && detail.Detail != "" {
			return fmt.Errorf("gateway error: %s", detail.Detail)
		}
		return fmt.Errorf("gateway error: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
