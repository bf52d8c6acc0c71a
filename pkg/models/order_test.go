package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAllTotals(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Name: "Café", Quantity: 2, UnitPrice: 10000},
			{Name: "Taza", Quantity: 1, UnitPrice: 5000},
		},
	}

	order.CalculateAllTotals()

	assert.InDelta(t, 20000, order.Items[0].Subtotal, 0.001)
	assert.InDelta(t, 5000, order.Items[1].Subtotal, 0.001)
	assert.InDelta(t, 25000, order.Totals.Subtotal, 0.001)
	assert.InDelta(t, 4750, order.Totals.IVA, 0.001)
	assert.InDelta(t, 3990, order.Totals.Shipping, 0.001)
	assert.InDelta(t, 33740, order.Totals.GrandTotal, 0.001)
}

func TestCalculateTotalsFreeShippingThreshold(t *testing.T) {
	order := &Order{
		Items: []OrderItem{{Name: "Notebook", Quantity: 1, UnitPrice: 50000}},
	}

	order.CalculateAllTotals()

	assert.Zero(t, order.Totals.Shipping)
	assert.InDelta(t, 59500, order.Totals.GrandTotal, 0.001)
}

func TestBuyOrderEmbedsNumber(t *testing.T) {
	order := &Order{Number: 42}
	assert.Equal(t, "O42", order.BuyOrder())
}

func TestMarkPaid(t *testing.T) {
	order := &Order{Number: 42, Status: OrderStatusCreated, Payment: Payment{Status: "pending"}}

	order.MarkPaid("tok-123")

	assert.Equal(t, "completed", order.Payment.Status)
	assert.Equal(t, "tok-123", order.Payment.Token)
	assert.Equal(t, OrderStatusPreparing, order.Status)
	assert.NotNil(t, order.Timeline.PaidAt)
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusCreated}).CanBeCancelled())
	assert.True(t, (&Order{Status: OrderStatusPreparing}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusDelivered}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).CanBeCancelled())
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{OrderStatusCreated, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, IsValidOrderStatus(status), status)
	}
	assert.False(t, IsValidOrderStatus("enviado"))
	assert.False(t, IsValidOrderStatus(""))
}
