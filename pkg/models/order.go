package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Order statuses follow the store's fulfillment flow. They are stored and
// served verbatim, accents included, because the storefront displays them
// as-is.
const (
	OrderStatusCreated   = "creado"
	OrderStatusPreparing = "en preparación"
	OrderStatusReady     = "listo para retiro"
	OrderStatusDelivered = "entregado"
	OrderStatusCancelled = "cancelado"
)

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusCreated, OrderStatusPreparing, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem represents a single line in an order.
type OrderItem struct {
	ProductID string  `json:"producto_id" bson:"producto_id" validate:"required"`
	Name      string  `json:"name" bson:"name" validate:"required"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"required,gte=1"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price" validate:"required,gte=0"`
	Subtotal  float64 `json:"total_price" bson:"total_price" validate:"gte=0"`
}

// Address represents a shipping address.
type Address struct {
	Street     string `json:"street" bson:"street" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	Region     string `json:"region" bson:"region" validate:"required"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country" validate:"required"`
	IsDefault  bool   `json:"is_default" bson:"is_default"`
}

// OrderTotals represents the financial breakdown of an order, in CLP.
type OrderTotals struct {
	Subtotal   float64 `json:"subtotal" bson:"subtotal" validate:"gte=0"`
	IVA        float64 `json:"iva" bson:"iva" validate:"gte=0"`
	Shipping   float64 `json:"shipping" bson:"shipping" validate:"gte=0"`
	GrandTotal float64 `json:"total_price" bson:"grand_total" validate:"gte=0"`
}

// Payment records the gateway outcome attached to an order.
type Payment struct {
	Method   string `json:"method" bson:"method" validate:"oneof=webpay transferencia"`
	Status   string `json:"status" bson:"status" validate:"required,oneof=pending completed failed"`
	Token    string `json:"-" bson:"token,omitempty"`
	BuyOrder string `json:"buy_order,omitempty" bson:"buy_order,omitempty"`
}

// Timeline tracks the lifecycle of an order.
type Timeline struct {
	OrderedAt   time.Time  `json:"ordered_at" bson:"ordered_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// Order represents a customer order. Number is the sequential store-wide
// order number; the gateway buy order reference embeds it as "O<number>".
type Order struct {
	ID              bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Number          int64         `json:"pedido_id" bson:"number" validate:"required,gt=0"`
	CustomerID      bson.ObjectID `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	CustomerEmail   string        `json:"customer_email" bson:"customer_email" validate:"omitempty,email"`
	SessionID       string        `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Status          string        `json:"order_status" bson:"status" validate:"required"`
	Items           []OrderItem   `json:"items" bson:"items" validate:"required,min=1,dive"`
	Totals          OrderTotals   `json:"totals" bson:"totals"`
	ShippingAddress Address       `json:"shipping_address" bson:"shipping_address"`
	Payment         Payment       `json:"payment" bson:"payment"`
	Timeline        Timeline      `json:"timeline" bson:"timeline"`
	Notes           string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// BuyOrder returns the merchant reference sent to the payment gateway.
func (o *Order) BuyOrder() string {
	return fmt.Sprintf("O%d", o.Number)
}

// CalculateItemSubtotal calculates the subtotal for a single order item.
func (oi *OrderItem) CalculateItemSubtotal() {
	oi.Subtotal = oi.UnitPrice * float64(oi.Quantity)
}

// CalculateTotals calculates all order totals. IVA is 19%, shipping is a
// flat 3990 CLP waived at or above 50000 CLP.
func (o *Order) CalculateTotals() {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.Subtotal
	}
	o.Totals.Subtotal = subtotal

	o.Totals.IVA = subtotal * 0.19

	if subtotal >= 50000 {
		o.Totals.Shipping = 0
	} else {
		o.Totals.Shipping = 3990
	}

	o.Totals.GrandTotal = o.Totals.Subtotal + o.Totals.IVA + o.Totals.Shipping
}

// CalculateAllTotals recalculates item subtotals and then order totals.
func (o *Order) CalculateAllTotals() {
	for i := range o.Items {
		o.Items[i].CalculateItemSubtotal()
	}
	o.CalculateTotals()
}

// SetTimestamps sets created_at on first call and always updates updated_at.
func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
		o.Timeline.OrderedAt = now
	}
	o.UpdatedAt = now
}

// UpdateStatus updates the order status and timeline accordingly.
func (o *Order) UpdateStatus(newStatus string) {
	o.Status = newStatus
	now := time.Now()

	switch newStatus {
	case OrderStatusPreparing:
		if o.Timeline.PaidAt == nil {
			o.Timeline.PaidAt = &now
		}
	case OrderStatusDelivered:
		if o.Timeline.DeliveredAt == nil {
			o.Timeline.DeliveredAt = &now
		}
	case OrderStatusCancelled:
		if o.Timeline.CancelledAt == nil {
			o.Timeline.CancelledAt = &now
		}
	}

	o.UpdatedAt = now
}

// MarkPaid records a completed gateway payment on the order.
func (o *Order) MarkPaid(token string) {
	now := time.Now()
	o.Payment.Status = "completed"
	o.Payment.Token = token
	if o.Timeline.PaidAt == nil {
		o.Timeline.PaidAt = &now
	}
	o.Status = OrderStatusPreparing
	o.UpdatedAt = now
}

// GetItemCount returns the total number of units in the order.
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// CanBeCancelled checks if the order can still be cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusCreated || o.Status == OrderStatusPreparing
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status" binding:"required"`
}

// CheckoutRequest starts payment for the session's cart.
type CheckoutRequest struct {
	Email           string  `json:"email" binding:"required,email"`
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	Notes           string  `json:"notes"`
}
