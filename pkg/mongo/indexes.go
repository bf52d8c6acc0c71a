package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vitrinacl/storefront-api/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Customers
	{
		CollectionName: "customers",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_customer_email_unique"),
		},
	},

	// Products
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "price", Value: -1},
			},
			Options: options.Index().SetName("idx_status_price"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().
				SetName("idx_product_text_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "tags", Value: 5},
					{Key: "description", Value: 1},
				}),
		},
	},

	// Orders: the numeric order number is the public identifier and the
	// payment-return lookup key.
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_order_number_unique"),
		},
	},
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_order_customer_created"),
		},
	},
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_order_status"),
		},
	},

	// Tickets
	{
		CollectionName: "tickets",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_ticket_number_unique"),
		},
	},
	{
		CollectionName: "tickets",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_ticket_status"),
		},
	},

	// Chat interactions, queried by sender when reviewing conversations
	{
		CollectionName: "chat_interactions",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "sender_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_chat_sender_created"),
		},
	},
}

func EnsureIndexesOnStartup() {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	for _, cfg := range requiredIndexes {
		collection := GetCollection(cfg.CollectionName)
		if _, err := collection.Indexes().CreateOne(ctx, cfg.IndexModel); err != nil {
			log.Fatalf("Failed to ensure index on %s: %v", cfg.CollectionName, err)
		}
	}

	log.Println("MongoDB indexes ensured")
}
