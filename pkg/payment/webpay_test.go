package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transbank/create", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req CreateTransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "O42", req.BuyOrder)
		assert.InDelta(t, 15990, req.Amount, 0.001)

		json.NewEncoder(w).Encode(CreateTransactionResponse{
			URL:   "https://webpay.example.com/init",
			Token: "tok-123",
		})
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:       server.URL,
		TokenProvider: func() string { return "secret" },
	})

	resp, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		Amount:    15990,
		SessionID: "s1",
		BuyOrder:  "O42",
		ReturnURL: "http://localhost/return",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "https://webpay.example.com/init", resp.URL)
}

func TestCreateTransactionIncompleteResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "https://webpay.example.com/init"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{})
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transbank/confirm", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-123", body["token_ws"])

		json.NewEncoder(w).Encode(Confirmation{
			Status:   "APPROVED",
			BuyOrder: "O42",
			PedidoID: 42,
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	conf, err := client.Confirm(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", conf.Status)
	assert.Equal(t, int64(42), conf.PedidoID)
}

func TestConfirmGatewayErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "token already used"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Confirm(context.Background(), "tok-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token already used")
}
