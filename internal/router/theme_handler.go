package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

// GetStoreConfig serves the public appearance settings the storefront
// renders itself from.
func GetStoreConfig(c *gin.Context) {
	config, err := mongo.GetStoreConfig(c.Request.Context())
	if err != nil {
		logger.L.Errorf("failed to fetch store config: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get store config", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(config))
}

func UpdateStoreConfig(c *gin.Context) {
	var req models.UpdateStoreConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid store config", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	config, err := mongo.UpdateStoreConfig(c.Request.Context(), &req)
	if err != nil {
		logger.L.Errorf("failed to update store config: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update store config", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(config))
}
