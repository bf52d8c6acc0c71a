package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type SalesSummary struct {
	TotalOrders   int     `json:"total_orders" bson:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue" bson:"total_revenue"`
	TotalUnits    int     `json:"total_units" bson:"total_units"`
	AvgOrderValue float64 `json:"avg_order_value" bson:"avg_order_value"`
}

type DailySales struct {
	Day     string  `json:"day" bson:"_id"`
	Orders  int     `json:"orders" bson:"orders"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

type SalesAnalytics struct {
	Summary SalesSummary `json:"summary"`
	ByDay   []DailySales `json:"by_day"`
}

// GetSalesAnalytics aggregates paid orders in [from, to).
func GetSalesAnalytics(ctx context.Context, from, to time.Time) (*SalesAnalytics, error) {
	collection := GetCollection("orders")

	match := bson.D{
		{Key: "payment.status", Value: "completed"},
		{Key: "created_at", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lt", Value: to},
		}},
	}

	summaryPipeline := bson.A{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$totals.grand_total"}}},
			{Key: "total_units", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}}}},
			{Key: "avg_order_value", Value: bson.D{{Key: "$avg", Value: "$totals.grand_total"}}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, summaryPipeline)
	if err != nil {
		return nil, err
	}
	var summaries []SalesSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}

	result := &SalesAnalytics{}
	if len(summaries) > 0 {
		result.Summary = summaries[0]
	}

	dailyPipeline := bson.A{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
			}}}},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$totals.grand_total"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err = collection.Aggregate(ctx, dailyPipeline)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &result.ByDay); err != nil {
		return nil, err
	}
	return result, nil
}

type TopProduct struct {
	ProductID string  `json:"producto_id" bson:"_id"`
	Name      string  `json:"name" bson:"name"`
	Units     int     `json:"units" bson:"units"`
	Revenue   float64 `json:"revenue" bson:"revenue"`
}

// GetTopProducts ranks products by units sold across paid orders.
func GetTopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	collection := GetCollection("orders")

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "payment.status", Value: "completed"}}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$items.producto_id"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$items.name"}}},
			{Key: "units", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$items.total_price"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "units", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var products []TopProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

type InventoryStatus struct {
	TotalProducts int `json:"total_products"`
	OutOfStock    int `json:"out_of_stock"`
	LowStock      int `json:"low_stock"`
}

// GetInventoryStatus counts catalog stock levels; low stock is 1-5 units.
func GetInventoryStatus(ctx context.Context) (*InventoryStatus, error) {
	collection := GetCollection("products")

	activeFilter := bson.D{{Key: "status", Value: "active"}}
	total, err := collection.CountDocuments(ctx, activeFilter)
	if err != nil {
		return nil, err
	}

	out, err := collection.CountDocuments(ctx, bson.D{
		{Key: "status", Value: "active"},
		{Key: "stock", Value: 0},
	})
	if err != nil {
		return nil, err
	}

	low, err := collection.CountDocuments(ctx, bson.D{
		{Key: "status", Value: "active"},
		{Key: "stock", Value: bson.D{{Key: "$gte", Value: 1}, {Key: "$lte", Value: 5}}},
	})
	if err != nil {
		return nil, err
	}

	return &InventoryStatus{
		TotalProducts: int(total),
		OutOfStock:    int(out),
		LowStock:      int(low),
	}, nil
}
