package payment

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

type fakeGateway struct {
	confirmCalls int
	conf         *Confirmation
	err          error
}

func (g *fakeGateway) Confirm(context.Context, string) (*Confirmation, error) {
	g.confirmCalls++
	return g.conf, g.err
}

type fakeCart struct {
	cleared bool
}

func (c *fakeCart) Clear(context.Context) { c.cleared = true }

func orderFetcher(order *models.Order, err error) func(context.Context, int64) (*models.Order, error) {
	return func(context.Context, int64) (*models.Order, error) { return order, err }
}

func approvedGateway(buyOrder string) *fakeGateway {
	return &fakeGateway{conf: &Confirmation{Status: "APPROVED", BuyOrder: buyOrder}}
}

func TestResolveMissingToken(t *testing.T) {
	gateway := &fakeGateway{}
	r := &Resolver{Gateway: gateway, Cart: &fakeCart{}}

	outcome := r.Resolve(context.Background(), url.Values{})

	assert.Equal(t, StateResolvedError, outcome.State)
	assert.False(t, outcome.Approved)
	assert.Zero(t, gateway.confirmCalls)
}

func TestResolveConfirmFailure(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("token already consumed")}
	cart := &fakeCart{}
	r := &Resolver{Gateway: gateway, Cart: cart}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})

	assert.Equal(t, StateResolvedError, outcome.State)
	assert.False(t, outcome.Approved)
	assert.Contains(t, outcome.Message, "token already consumed")
	assert.False(t, cart.cleared)
}

func TestResolveRejectedStatus(t *testing.T) {
	gateway := &fakeGateway{conf: &Confirmation{Status: "rejected"}}
	cart := &fakeCart{}
	r := &Resolver{Gateway: gateway, Cart: cart}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})

	assert.Equal(t, StateResolvedError, outcome.State)
	assert.False(t, outcome.Approved)
	assert.Contains(t, outcome.Message, "rechazado")
	assert.False(t, cart.cleared)
}

func TestResolveOtherNonSuccessStatus(t *testing.T) {
	gateway := &fakeGateway{conf: &Confirmation{Status: "PENDING"}}
	r := &Resolver{Gateway: gateway, Cart: &fakeCart{}}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})

	assert.False(t, outcome.Approved)
	assert.Equal(t, "Pago procesado", outcome.Message)
}

func TestResolveSuccessWithReceipt(t *testing.T) {
	order := &models.Order{Number: 42}
	cart := &fakeCart{}
	r := &Resolver{
		Gateway:    approvedGateway("O42"),
		Cart:       cart,
		FetchOrder: orderFetcher(order, nil),
	}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})

	assert.Equal(t, StateResolvedSuccess, outcome.State)
	assert.True(t, outcome.Approved)
	assert.Equal(t, int64(42), outcome.OrderNumber)
	assert.Same(t, order, outcome.Order)
	assert.False(t, outcome.ReceiptUnavailable)
	assert.True(t, cart.cleared)
}

func TestResolveSuccessDespiteReceiptFailure(t *testing.T) {
	r := &Resolver{
		Gateway:    approvedGateway("O42"),
		Cart:       &fakeCart{},
		FetchOrder: orderFetcher(nil, errors.New("backend down")),
	}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})

	assert.Equal(t, StateResolvedSuccess, outcome.State)
	assert.True(t, outcome.Approved)
	assert.True(t, outcome.ReceiptUnavailable)
	assert.NotContains(t, outcome.Message, "rechazado")
}

func TestResolveAmbiguousWhenNoOrderNumber(t *testing.T) {
	r := &Resolver{
		Gateway:    approvedGateway("garbage"),
		Cart:       &fakeCart{},
		FetchOrder: orderFetcher(nil, errors.New("should not be called")),
	}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})

	assert.Equal(t, StateResolvedAmbiguous, outcome.State)
	assert.True(t, outcome.Approved)
	assert.Zero(t, outcome.OrderNumber)
}

func TestResolveFallbackPriority(t *testing.T) {
	// Every source present with a different value; the query parameter
	// wins, then each source in turn as the ones above it drop out.
	gateway := &fakeGateway{conf: &Confirmation{
		Status:   "APPROVED",
		BuyOrder: "O3",
		OrderID:  2,
		Meta:     map[string]any{"pedido_id": float64(5)},
	}}
	fetched := make([]int64, 0, 1)
	r := &Resolver{
		Gateway: gateway,
		Cart:    &fakeCart{},
		FetchOrder: func(_ context.Context, n int64) (*models.Order, error) {
			fetched = append(fetched, n)
			return &models.Order{Number: n}, nil
		},
		PendingOrder: func(context.Context) (int64, bool) { return 4, true },
	}

	outcome := r.Resolve(context.Background(), url.Values{
		"token_ws": {"tok"},
		"orderId":  {"1"},
	})

	require.Equal(t, []int64{1}, fetched)
	assert.Equal(t, int64(1), outcome.OrderNumber)
}

func TestResolveFallbackConfirmationField(t *testing.T) {
	gateway := &fakeGateway{conf: &Confirmation{Status: "success", BuyOrder: "O3", OrderID: 2}}
	r := &Resolver{
		Gateway:    gateway,
		Cart:       &fakeCart{},
		FetchOrder: orderFetcher(&models.Order{Number: 2}, nil),
	}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})
	assert.Equal(t, int64(2), outcome.OrderNumber)
}

func TestResolveFallbackBuyOrderParse(t *testing.T) {
	r := &Resolver{
		Gateway:    approvedGateway("O3"),
		Cart:       &fakeCart{},
		FetchOrder: orderFetcher(&models.Order{Number: 3}, nil),
		PendingOrder: func(context.Context) (int64, bool) {
			return 4, true
		},
	}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})
	assert.Equal(t, int64(3), outcome.OrderNumber)
}

func TestResolveFallbackPendingOrderStash(t *testing.T) {
	r := &Resolver{
		Gateway:      approvedGateway("garbage"),
		Cart:         &fakeCart{},
		FetchOrder:   orderFetcher(&models.Order{Number: 4}, nil),
		PendingOrder: func(context.Context) (int64, bool) { return 4, true },
	}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})
	assert.Equal(t, int64(4), outcome.OrderNumber)
}

func TestResolveFallbackMetadata(t *testing.T) {
	gateway := &fakeGateway{conf: &Confirmation{
		Status: "AUTHORIZED",
		Meta:   map[string]any{"order_id": "5"},
	}}
	r := &Resolver{
		Gateway:    gateway,
		Cart:       &fakeCart{},
		FetchOrder: orderFetcher(&models.Order{Number: 5}, nil),
	}

	outcome := r.Resolve(context.Background(), url.Values{"token_ws": {"tok"}})
	assert.Equal(t, int64(5), outcome.OrderNumber)
}

func TestResolveIssuesExactlyOneConfirm(t *testing.T) {
	gateway := approvedGateway("O42")
	r := &Resolver{
		Gateway:    gateway,
		Cart:       &fakeCart{},
		FetchOrder: orderFetcher(&models.Order{Number: 42}, nil),
	}
	query := url.Values{"token_ws": {"tok"}}

	first := r.Resolve(context.Background(), query)
	second := r.Resolve(context.Background(), query)

	assert.Equal(t, 1, gateway.confirmCalls)
	assert.Same(t, first, second)
}

func TestResolveReentryAfterErrorKeepsOutcome(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("boom")}
	r := &Resolver{Gateway: gateway, Cart: &fakeCart{}}
	query := url.Values{"token_ws": {"tok"}}

	first := r.Resolve(context.Background(), query)
	second := r.Resolve(context.Background(), query)

	assert.Equal(t, 1, gateway.confirmCalls)
	assert.Same(t, first, second)
	assert.Equal(t, StateResolvedError, r.State())
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, StateStart.Terminal())
	assert.False(t, StateConfirming.Terminal())
	assert.True(t, StateResolvedSuccess.Terminal())
	assert.True(t, StateResolvedAmbiguous.Terminal())
	assert.True(t, StateResolvedError.Terminal())
}

func TestIsApprovedStatus(t *testing.T) {
	for _, status := range []string{"APPROVED", "success", "AUTHORIZED"} {
		assert.True(t, IsApprovedStatus(status), status)
	}
	for _, status := range []string{"approved", "rejected", "FAILED", ""} {
		assert.False(t, IsApprovedStatus(status), status)
	}
}
