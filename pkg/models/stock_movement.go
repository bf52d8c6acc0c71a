package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StockMovement is an audit record written whenever product stock changes
// outside a plain admin edit (currently: paid orders decrement stock).
type StockMovement struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID   string        `json:"producto_id" bson:"producto_id"`
	OrderNumber int64         `json:"pedido_id,omitempty" bson:"order_number,omitempty"`
	Delta       int           `json:"delta" bson:"delta"`
	Reason      string        `json:"reason" bson:"reason" validate:"required,oneof=sale cancellation adjustment"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}
