package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vitrinacl/storefront-api/pkg/models"
)

const productCacheTTL = 24 * time.Hour

// CacheSingleProduct stores a product in the read-through cache together
// with its category and recency lists.
func CacheSingleProduct(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.ID.Hex(), err)
	}

	pipe := client.TxPipeline()

	productKey := fmt.Sprintf("product:%s", product.ID.Hex())
	pipe.Set(ctx, productKey, productJSON, productCacheTTL)

	categoryKey := fmt.Sprintf("category:%s", product.Category)
	pipe.LPush(ctx, categoryKey, product.ID.Hex())
	pipe.Expire(ctx, categoryKey, productCacheTTL)

	pipe.LPush(ctx, "products:recent", product.ID.Hex())
	// Keep only the 100 most recent products
	pipe.LTrim(ctx, "products:recent", 0, 99)
	pipe.Expire(ctx, "products:recent", productCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for product %s: %w", product.ID.Hex(), err)
	}
	return nil
}

func GetProductFromCache(ctx context.Context, productID string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	productJSON, err := client.Get(ctx, fmt.Sprintf("product:%s", productID)).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

// RemoveProductFromCache drops a product and its related cache entries.
func RemoveProductFromCache(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()

	pipe.Del(ctx, fmt.Sprintf("product:%s", product.ID.Hex()))
	pipe.LRem(ctx, fmt.Sprintf("category:%s", product.Category), 0, product.ID.Hex())
	pipe.LRem(ctx, "products:recent", 0, product.ID.Hex())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove product from Redis cache: %w", err)
	}
	return nil
}
