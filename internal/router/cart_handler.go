package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vitrinacl/storefront-api/pkg/cart"
	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
	"github.com/vitrinacl/storefront-api/pkg/redis"
)

// openCart loads the session's cart from Redis. Session ids are minted by
// the storefront (one per anonymous browser session) and opaque to us.
func openCart(c *gin.Context) (*cart.Store, string) {
	sessionID := c.Param("sessionId")
	return cart.Open(c.Request.Context(), sessionID, redis.NewCartStorage()), sessionID
}

func GetCart(c *gin.Context) {
	store, _ := openCart(c)
	c.JSON(http.StatusOK, global.SuccessResponse(store.View()))
}

// AddToCart adds a product to the session cart. The payload either names a
// catalog product by id or carries the raw product document inline, the
// way legacy storefront builds still send it.
func AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	raw := req.Product
	if raw == nil && req.ProductoID != "" {
		id, err := bson.ObjectIDFromHex(req.ProductoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product id", []global.ValidationError{
				{Field: "producto_id", Message: "Must be a valid object id", Code: "invalid_format"},
			}))
			return
		}
		raw, err = mongo.GetRawProductByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", nil))
			return
		}
	}
	if raw == nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Either producto_id or product is required", nil))
		return
	}

	store, _ := openCart(c)
	store.Add(c.Request.Context(), raw, req.Quantity)
	c.JSON(http.StatusOK, global.SuccessResponse(store.View()))
}

func UpdateCartItem(c *gin.Context) {
	var req models.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "quantity", Message: "quantity is required", Code: "required"},
		}))
		return
	}

	store, _ := openCart(c)
	store.UpdateQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	c.JSON(http.StatusOK, global.SuccessResponse(store.View()))
}

func RemoveFromCart(c *gin.Context) {
	store, _ := openCart(c)
	store.Remove(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, global.SuccessResponse(store.View()))
}

func ClearCart(c *gin.Context) {
	store, _ := openCart(c)
	store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, global.SuccessResponse(store.View()))
}
