package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

var ErrProductNotFound = errors.New("product not found")

type ProductFilter struct {
	Category   string
	Query      string
	ActiveOnly bool
}

func GetProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	collection := GetCollection("products")

	query := bson.D{{Key: "status", Value: bson.D{{Key: "$ne", Value: "deleted"}}}}
	if filter.ActiveOnly {
		query = bson.D{{Key: "status", Value: "active"}}
	}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}
	if filter.Query != "" {
		query = append(query, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: filter.Query}}})
	}

	cursor, err := collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func GetProductByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	collection := GetCollection("products")

	var product models.Product
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetRawProductByID returns the product document untyped. The cart
// normalizer consumes this shape so legacy field names survive intact.
func GetRawProductByID(ctx context.Context, id bson.ObjectID) (map[string]any, error) {
	collection := GetCollection("products")

	var doc bson.M
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return map[string]any(doc), nil
}

func CreateProducts(ctx context.Context, products []*models.Product) ([]*models.Product, error) {
	collection := GetCollection("products")

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert products: %w", err)
	}
	return products, nil
}

func UpdateProductByID(ctx context.Context, id bson.ObjectID, updates map[string]interface{}) (*models.Product, error) {
	collection := GetCollection("products")

	updates["updated_at"] = time.Now()

	setDoc := bson.D{}
	for k, v := range updates {
		setDoc = append(setDoc, bson.E{Key: k, Value: v})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: setDoc}},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProductByID soft-deletes so existing order lines keep resolving.
func DeleteProductByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	return UpdateProductByID(ctx, id, map[string]interface{}{"status": "deleted"})
}

// AdjustProductStock applies a stock delta and records the movement.
// Stock never goes below zero even if the delta would take it there.
func AdjustProductStock(ctx context.Context, id bson.ObjectID, delta int, orderNumber int64, reason string) error {
	collection := GetCollection("products")

	var product models.Product
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		newStock = 0
	}

	_, err = collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "stock", Value: newStock},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return err
	}

	movement := models.StockMovement{
		ID:          bson.NewObjectID(),
		ProductID:   id.Hex(),
		OrderNumber: orderNumber,
		Delta:       delta,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	if _, err := GetCollection("stock_movements").InsertOne(ctx, movement); err != nil {
		// The stock change itself succeeded; a missing audit row is not
		// worth failing the caller over.
		return nil
	}
	return nil
}

func GetCategories(ctx context.Context) ([]string, error) {
	collection := GetCollection("products")

	values, err := collection.Distinct(ctx, "category", bson.D{{Key: "status", Value: "active"}}).Raw()
	if err != nil {
		return nil, err
	}

	elements, err := values.Values()
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(elements))
	for _, el := range elements {
		if s, ok := el.StringValueOK(); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// AddProductImages appends image records and returns the updated product.
func AddProductImages(ctx context.Context, id bson.ObjectID, urls []string) (*models.Product, error) {
	product, err := GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	position := len(product.Images)
	images := make([]models.ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, models.ProductImage{
			ID:       bson.NewObjectID(),
			URL:      url,
			Position: position + i,
		})
	}

	collection := GetCollection("products")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "images", Value: bson.D{{Key: "$each", Value: images}}}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
		},
		opts,
	).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

var ErrImageNotFound = errors.New("image not found")

func DeleteProductImage(ctx context.Context, imageID bson.ObjectID) error {
	collection := GetCollection("products")

	result, err := collection.UpdateOne(ctx,
		bson.D{{Key: "images.id", Value: imageID}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "images", Value: bson.D{{Key: "id", Value: imageID}}}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrImageNotFound
	}
	return nil
}
