package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

const storeConfigID = "store_config"

// GetStoreConfig returns the store-appearance document, falling back to
// the defaults when no admin has customized anything yet.
func GetStoreConfig(ctx context.Context) (*models.StoreConfig, error) {
	collection := GetCollection("store_config")

	var config models.StoreConfig
	err := collection.FindOne(ctx, bson.D{{Key: "key", Value: storeConfigID}}).Decode(&config)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DefaultStoreConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func UpdateStoreConfig(ctx context.Context, req *models.UpdateStoreConfigRequest) (*models.StoreConfig, error) {
	collection := GetCollection("store_config")

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "key", Value: storeConfigID},
		{Key: "store_name", Value: req.StoreName},
		{Key: "tagline", Value: req.Tagline},
		{Key: "template_type", Value: req.TemplateType},
		{Key: "primary_color", Value: req.PrimaryColor},
		{Key: "secondary_color", Value: req.SecondaryColor},
		{Key: "banner_url", Value: req.BannerURL},
		{Key: "logo_url", Value: req.LogoURL},
		{Key: "chat_enabled", Value: req.ChatEnabled},
		{Key: "updated_at", Value: time.Now()},
	}}}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var config models.StoreConfig
	err := collection.FindOneAndUpdate(ctx, bson.D{{Key: "key", Value: storeConfigID}}, update, opts).Decode(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
