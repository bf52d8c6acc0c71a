package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitrinacl/storefront-api/pkg/ai"
	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

// analyticsPeriod reads the ?from=/&to= date range, defaulting to the
// last 30 days.
func analyticsPeriod(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid from date", []global.ValidationError{
				{Field: "from", Message: "Expected YYYY-MM-DD", Code: "invalid_format"},
			}))
			return from, to, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid to date", []global.ValidationError{
				{Field: "to", Message: "Expected YYYY-MM-DD", Code: "invalid_format"},
			}))
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}

func GetSalesAnalytics(c *gin.Context) {
	from, to, ok := analyticsPeriod(c)
	if !ok {
		return
	}

	analytics, err := mongo.GetSalesAnalytics(c.Request.Context(), from, to)
	if err != nil {
		logger.L.Errorf("failed to compute sales analytics: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get sales analytics", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(analytics))
}

func GetTopProducts(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	products, err := mongo.GetTopProducts(c.Request.Context(), limit)
	if err != nil {
		logger.L.Errorf("failed to compute top products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get top products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func GetInventoryAnalytics(c *gin.Context) {
	status, err := mongo.GetInventoryStatus(c.Request.Context())
	if err != nil {
		logger.L.Errorf("failed to compute inventory status: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get inventory status", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(status))
}

func GenerateAISalesReport(c *gin.Context) {
	from, to, ok := analyticsPeriod(c)
	if !ok {
		return
	}

	report, err := ai.GenerateSalesReport(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate sales report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func GenerateAIInventoryReport(c *gin.Context) {
	report, err := ai.GenerateInventoryReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate inventory report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func GenerateAIProductAnalysis(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	report, err := ai.GenerateTopProductsReport(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate product analysis", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
