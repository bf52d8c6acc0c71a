package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vitrinacl/storefront-api/pkg/auth"
	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/models"
)

// RequireAuth validates the Bearer access token and stores the caller's
// identity on the context for handlers downstream.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authorization required", []global.ValidationError{
				{Field: "Authorization", Message: "Bearer token is required", Code: "required"},
			}))
			c.Abort()
			return
		}

		claims, err := auth.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			c.Abort()
			return
		}

		c.Set("customer_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// bearerClaims parses the Authorization header without enforcing it.
// Guest-accessible routes use it to attach an identity when one is
// present.
func bearerClaims(c *gin.Context) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := auth.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

// RequireAdmin gates back-office routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Admin access required", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
