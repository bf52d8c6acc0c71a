package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

var ErrOrderNotFound = errors.New("order not found")

// CreateOrder assigns the next sequential order number and inserts the
// order. The caller is expected to have calculated totals already.
func CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	number, err := NextSequence(ctx, "orders")
	if err != nil {
		return nil, err
	}

	order.ID = bson.NewObjectID()
	order.Number = number
	if order.Status == "" {
		order.Status = models.OrderStatusCreated
	}
	order.SetTimestamps()
	order.Payment.BuyOrder = order.BuyOrder()

	collection := GetCollection("orders")
	if _, err := collection.InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	return order, nil
}

// GetOrderByNumber fetches an order by its public sequential number.
func GetOrderByNumber(ctx context.Context, number int64) (*models.Order, error) {
	collection := GetCollection("orders")

	var order models.Order
	err := collection.FindOne(ctx, bson.D{{Key: "number", Value: number}}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func GetAllOrders(ctx context.Context, status string) ([]*models.Order, error) {
	collection := GetCollection("orders")

	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}

	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// customerOrdersFilter matches the orders a customer owns. Checkout does
// not require an account, so older orders may carry only the checkout
// email; ownership is the account id or that email.
func customerOrdersFilter(customerID bson.ObjectID, email string) bson.D {
	owners := bson.A{}
	if !customerID.IsZero() {
		owners = append(owners, bson.D{{Key: "customer_id", Value: customerID}})
	}
	if email != "" {
		owners = append(owners, bson.D{{Key: "customer_email", Value: email}})
	}
	if len(owners) == 0 {
		return bson.D{{Key: "customer_id", Value: customerID}}
	}
	return bson.D{{Key: "$or", Value: owners}}
}

func GetOrdersByCustomer(ctx context.Context, customerID bson.ObjectID, email string) ([]*models.Order, error) {
	collection := GetCollection("orders")

	cursor, err := collection.Find(ctx,
		customerOrdersFilter(customerID, email),
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ReplaceOrder persists a fully materialized order after an in-memory
// status or payment transition.
func ReplaceOrder(ctx context.Context, order *models.Order) error {
	collection := GetCollection("orders")

	result, err := collection.ReplaceOne(ctx, bson.D{{Key: "number", Value: order.Number}}, order)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkOrderPaid records the completed gateway payment and decrements the
// stock of every line. Stock adjustment failures are reported but do not
// roll back the payment record: the money already moved.
func MarkOrderPaid(ctx context.Context, number int64, token string) (*models.Order, []error) {
	order, err := GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, []error{err}
	}
	if order.Payment.Status == "completed" {
		return order, nil
	}

	order.MarkPaid(token)
	if err := ReplaceOrder(ctx, order); err != nil {
		return nil, []error{err}
	}

	var stockErrs []error
	for _, item := range order.Items {
		productID, err := bson.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}
		if err := AdjustProductStock(ctx, productID, -item.Quantity, order.Number, "sale"); err != nil {
			stockErrs = append(stockErrs, fmt.Errorf("product %s: %w", item.ProductID, err))
		}
	}
	return order, stockErrs
}
