package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

// parseOrderNumber reads a positive order number path parameter.
func parseOrderNumber(c *gin.Context, param string) (int64, bool) {
	number, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order number", []global.ValidationError{
			{Field: param, Message: "Must be a positive integer", Code: "invalid_format"},
		}))
		return 0, false
	}
	return number, true
}

// GetMyOrders lists the authenticated customer's orders.
func GetMyOrders(c *gin.Context) {
	customerID, err := bson.ObjectIDFromHex(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token subject", nil))
		return
	}

	orders, err := mongo.GetOrdersByCustomer(c.Request.Context(), customerID, c.GetString("email"))
	if err != nil {
		logger.L.Errorf("failed to list orders for customer %s: %v", customerID.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get orders", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

// GetOrderByNumber serves both the customer receipt view and the admin
// detail view. Non-admin callers only see their own orders.
func GetOrderByNumber(c *gin.Context) {
	number, ok := parseOrderNumber(c, "orderNumber")
	if !ok {
		return
	}

	order, err := mongo.GetOrderByNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, mongo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
			return
		}
		logger.L.Errorf("failed to fetch order %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	if c.GetString("role") != models.RoleAdmin &&
		order.CustomerID.Hex() != c.GetString("customer_id") &&
		order.CustomerEmail != c.GetString("email") {
		c.JSON(http.StatusForbidden, global.ErrorResponse("Not your order", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// GetAllOrders lists orders for the back office, optionally filtered by
// status via ?status=.
func GetAllOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.IsValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid status filter", []global.ValidationError{
			{Field: "status", Message: "Unknown order status", Code: "invalid_value"},
		}))
		return
	}

	orders, err := mongo.GetAllOrders(c.Request.Context(), status)
	if err != nil {
		logger.L.Errorf("failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get orders", nil))
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(len(orders)))
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

// UpdateOrderStatus moves an order through the fulfillment flow.
func UpdateOrderStatus(c *gin.Context) {
	number, ok := parseOrderNumber(c, "orderNumber")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("order_status is required", nil))
		return
	}
	if !models.IsValidOrderStatus(req.OrderStatus) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order status", []global.ValidationError{
			{Field: "order_status", Message: "Unknown order status", Code: "invalid_value"},
		}))
		return
	}

	ctx := c.Request.Context()
	order, err := mongo.GetOrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, mongo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
			return
		}
		logger.L.Errorf("failed to fetch order %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	if req.OrderStatus == models.OrderStatusCancelled && !order.CanBeCancelled() {
		c.JSON(http.StatusConflict, global.ErrorResponse("Order can no longer be cancelled", nil))
		return
	}

	order.UpdateStatus(req.OrderStatus)
	if err := mongo.ReplaceOrder(ctx, order); err != nil {
		logger.L.Errorf("failed to update order %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update order", nil))
		return
	}

	// A cancellation returns the units to stock.
	if req.OrderStatus == models.OrderStatusCancelled && order.Payment.Status == "completed" {
		for _, item := range order.Items {
			productID, err := bson.ObjectIDFromHex(item.ProductID)
			if err != nil {
				continue
			}
			if err := mongo.AdjustProductStock(ctx, productID, item.Quantity, order.Number, "cancellation"); err != nil {
				logger.L.Warnf("order %d: stock restore failed: %v", order.Number, err)
			}
		}
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// SendReceipt re-sends the receipt email for an order the caller owns.
func SendReceipt(c *gin.Context) {
	number, ok := parseOrderNumber(c, "orderNumber")
	if !ok {
		return
	}

	order, err := mongo.GetOrderByNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, mongo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
			return
		}
		logger.L.Errorf("failed to fetch order %d: %v", number, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	if c.GetString("role") != models.RoleAdmin &&
		order.CustomerID.Hex() != c.GetString("customer_id") &&
		order.CustomerEmail != c.GetString("email") {
		c.JSON(http.StatusForbidden, global.ErrorResponse("Not your order", nil))
		return
	}

	receiptMailer.SendReceipt(order)
	c.JSON(http.StatusOK, global.MessageResponse("Receipt queued"))
}
