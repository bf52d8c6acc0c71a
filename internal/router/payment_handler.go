package router

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vitrinacl/storefront-api/pkg/cart"
	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/mailer"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
	"github.com/vitrinacl/storefront-api/pkg/payment"
	"github.com/vitrinacl/storefront-api/pkg/redis"
)

var (
	gatewayClient *payment.Client
	receiptMailer *mailer.Mailer
)

// InitPaymentGateway builds the gateway client and the receipt mailer.
// Called once from main after the environment is loaded.
func InitPaymentGateway() {
	gatewayClient = payment.NewClient(payment.Config{
		BaseURL: global.GetEnvOrDefault("WEBPAY_BASE_URL", "http://localhost:8002"),
		TokenProvider: func() string {
			return os.Getenv("WEBPAY_API_TOKEN")
		},
	})
	receiptMailer = mailer.New()
}

// CreatePayment turns the session cart into an order and registers a
// gateway transaction. The storefront form-POSTs the returned token to
// the returned URL to hand the browser over to the gateway.
func CreatePayment(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid checkout data", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	ctx := c.Request.Context()
	store := cart.Open(ctx, sessionID, redis.NewCartStorage())
	lines := store.Lines()
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart is empty", nil))
		return
	}

	if errs := checkAvailability(ctx, lines); len(errs) > 0 {
		c.JSON(http.StatusConflict, global.ErrorResponse("Some items are unavailable", errs))
		return
	}

	order := &models.Order{
		CustomerEmail:   req.Email,
		SessionID:       sessionID,
		Status:          models.OrderStatusCreated,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Payment: models.Payment{
			Method: "webpay",
			Status: "pending",
		},
	}
	// Checkout is open to guests; when the caller is signed in, tie the
	// order to the account so it shows up under their order history.
	if claims, ok := bearerClaims(c); ok {
		if id, err := bson.ObjectIDFromHex(claims.Subject); err == nil {
			order.CustomerID = id
		}
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	order.CalculateAllTotals()

	order, err := mongo.CreateOrder(ctx, order)
	if err != nil {
		logger.L.Errorf("failed to create order for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create order", nil))
		return
	}

	if err := redis.StashPendingOrder(ctx, sessionID, order.Number); err != nil {
		logger.L.Warnf("failed to stash pending order %d: %v", order.Number, err)
	}

	returnURL := global.GetPublicBaseURL() + "/api/webpay/return/" + sessionID
	tx, err := gatewayClient.CreateTransaction(ctx, payment.CreateTransactionRequest{
		Amount:    order.Totals.GrandTotal,
		SessionID: sessionID,
		BuyOrder:  order.BuyOrder(),
		ReturnURL: returnURL,
	})
	if err != nil {
		logger.L.Errorf("failed to create gateway transaction for order %d: %v", order.Number, err)
		c.JSON(http.StatusBadGateway, global.ErrorResponse("Payment gateway unavailable", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"url":       tx.URL,
		"token":     tx.Token,
		"pedido_id": order.Number,
	}))
}

// PaymentReturn resolves the gateway redirect: confirms the token once,
// reconciles it to an order, marks the order paid and surfaces the
// receipt. A confirmed payment is reported as such even when the receipt
// lookup fails afterwards.
func PaymentReturn(c *gin.Context) {
	sessionID := c.Param("sessionId")
	ctx := c.Request.Context()
	token := c.Query("token_ws")

	resolver := &payment.Resolver{
		Gateway: gatewayClient,
		Cart:    cart.Open(ctx, sessionID, redis.NewCartStorage()),
		FetchOrder: func(ctx context.Context, number int64) (*models.Order, error) {
			order, errs := mongo.MarkOrderPaid(ctx, number, token)
			if order == nil {
				return nil, errs[0]
			}
			for _, stockErr := range errs {
				logger.L.Warnf("order %d: stock adjustment failed: %v", number, stockErr)
			}
			receiptMailer.SendReceipt(order)
			return order, nil
		},
		PendingOrder: func(ctx context.Context) (int64, bool) {
			return redis.PendingOrder(ctx, sessionID)
		},
	}

	outcome := resolver.Resolve(ctx, c.Request.URL.Query())

	if outcome.Approved {
		if err := redis.ClearPendingOrder(ctx, sessionID); err != nil {
			logger.L.Warnf("failed to clear pending order for session %s: %v", sessionID, err)
		}
		c.JSON(http.StatusOK, global.SuccessResponse(outcome))
		return
	}
	c.JSON(http.StatusOK, global.ErrorResponse(outcome.Message, nil))
}

// checkAvailability verifies catalog stock for every cart line that maps
// to a catalog product. Lines added from inline product payloads carry
// ids outside the catalog and are skipped.
func checkAvailability(ctx context.Context, lines []models.CartLine) []global.ValidationError {
	var errs []global.ValidationError
	for _, line := range lines {
		id, err := bson.ObjectIDFromHex(line.ProductID)
		if err != nil {
			continue
		}
		product, err := mongo.GetProductByID(ctx, id)
		if err != nil {
			errs = append(errs, global.ValidationError{
				Field: line.ProductID, Message: line.Name + " ya no está disponible", Code: "unavailable",
			})
			continue
		}
		if !product.IsInStock() || product.Stock < line.Quantity {
			errs = append(errs, global.ValidationError{
				Field: line.ProductID, Message: "Stock insuficiente para " + line.Name, Code: "insufficient_stock",
			})
		}
	}
	return errs
}
