package models

// Cart models for the Redis-backed session cart.

// CartLine is one product entry in a session cart. The unit price is
// snapshotted when the line is added, not re-fetched on later reads.
type CartLine struct {
	ProductID string  `json:"producto_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// TotalPrice is the line subtotal (unit price times quantity).
func (l CartLine) TotalPrice() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartView is the cart as returned to clients, with the derived totals.
type CartView struct {
	SessionID  string     `json:"session_id"`
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
}

type AddToCartRequest struct {
	ProductoID string         `json:"producto_id"`
	Product    map[string]any `json:"product,omitempty"`
	Quantity   int            `json:"quantity"`
}

type UpdateCartLineRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}
