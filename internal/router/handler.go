package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
	"github.com/vitrinacl/storefront-api/pkg/redis"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// GetAllProducts lists active products, optionally filtered by category or
// a text search query.
func GetAllProducts(c *gin.Context) {
	filter := mongo.ProductFilter{
		Category:   c.Query("categoria"),
		Query:      c.Query("q"),
		ActiveOnly: true,
	}

	products, err := mongo.GetProducts(c.Request.Context(), filter)
	if err != nil {
		logger.L.Errorf("failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

// GetProductByID retrieves a product by id with Redis caching.
func GetProductByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if product, err := redis.GetProductFromCache(ctx, id.Hex()); err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	product, err := mongo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "id", Message: "No product exists with this id", Code: "not_found"},
			}))
			return
		}
		logger.L.Errorf("failed to fetch product %s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}

	if cacheErr := redis.CacheSingleProduct(ctx, product); cacheErr != nil {
		logger.L.Warnf("failed to cache product %s: %v", id.Hex(), cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func GetCategories(c *gin.Context) {
	categories, err := mongo.GetCategories(c.Request.Context())
	if err != nil {
		logger.L.Errorf("failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get categories", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(categories))
}

// CreateProducts accepts one or many products in a single request.
func CreateProducts(c *gin.Context) {
	var reqs []models.CreateProductRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No products provided", nil))
		return
	}

	products := make([]*models.Product, 0, len(reqs))
	for i := range reqs {
		products = append(products, reqs[i].ToProduct())
	}

	created, err := mongo.CreateProducts(c.Request.Context(), products)
	if err != nil {
		logger.L.Errorf("failed to create products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create products", nil))
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

// UpdateProduct applies a partial update. Immutable fields are stripped
// rather than rejected.
func UpdateProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}
	for _, field := range []string{"_id", "id", "created_at"} {
		delete(updates, field)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updates provided", nil))
		return
	}

	ctx := c.Request.Context()
	product, err := mongo.UpdateProductByID(ctx, id, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", nil))
			return
		}
		logger.L.Errorf("failed to update product %s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update product", nil))
		return
	}

	if cacheErr := redis.CacheSingleProduct(ctx, product); cacheErr != nil {
		logger.L.Warnf("failed to refresh product cache %s: %v", id.Hex(), cacheErr)
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

// DeleteProduct soft-deletes so past orders keep a resolvable reference.
func DeleteProduct(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	product, err := mongo.DeleteProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", nil))
			return
		}
		logger.L.Errorf("failed to delete product %s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete product", nil))
		return
	}

	if cacheErr := redis.RemoveProductFromCache(ctx, product); cacheErr != nil {
		logger.L.Warnf("failed to evict product cache %s: %v", id.Hex(), cacheErr)
	}
	c.JSON(http.StatusOK, global.MessageResponse("Product deleted"))
}

func AddProductImages(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req models.AddProductImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	ctx := c.Request.Context()
	product, err := mongo.AddProductImages(ctx, id, req.Images)
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", nil))
			return
		}
		logger.L.Errorf("failed to add images to product %s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add images", nil))
		return
	}

	if cacheErr := redis.CacheSingleProduct(ctx, product); cacheErr != nil {
		logger.L.Warnf("failed to refresh product cache %s: %v", id.Hex(), cacheErr)
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func DeleteProductImage(c *gin.Context) {
	imageID, ok := parseObjectID(c, "imageId")
	if !ok {
		return
	}

	if err := mongo.DeleteProductImage(c.Request.Context(), imageID); err != nil {
		if errors.Is(err, mongo.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Image not found", nil))
			return
		}
		logger.L.Errorf("failed to delete image %s: %v", imageID.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete image", nil))
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse("Image deleted"))
}

// parseObjectID reads a hex ObjectID path parameter, answering 400 itself
// when the value is malformed.
func parseObjectID(c *gin.Context, param string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid id format", []global.ValidationError{
			{Field: param, Message: "Must be a valid object id", Code: "invalid_format"},
		}))
		return bson.ObjectID{}, false
	}
	return id, true
}
