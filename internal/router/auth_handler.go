package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitrinacl/storefront-api/pkg/auth"
	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

// Register creates a shopper account. Admin accounts are provisioned out
// of band, never through this endpoint.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid registration data", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.L.Errorf("failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	customer := &models.Customer{
		Email:         req.Email,
		Password:      string(hashed),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Role:          models.RoleClient,
		AccountStatus: "active",
	}

	customer, err = mongo.CreateCustomer(c.Request.Context(), customer)
	if err != nil {
		if errors.Is(err, mongo.ErrEmailExists) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "An account with this email already exists", Code: "duplicate"},
			}))
			return
		}
		logger.L.Errorf("failed to create customer: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(customer))
}

func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("email and password are required", nil))
		return
	}

	customer, err := mongo.GetCustomerByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid credentials", nil))
		return
	}
	if !customer.IsActive() {
		c.JSON(http.StatusForbidden, global.ErrorResponse("Account is not active", nil))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid credentials", nil))
		return
	}

	tokens, err := issueTokens(customer)
	if err != nil {
		logger.L.Errorf("failed to sign tokens for %s: %v", customer.Email, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to sign in", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(tokens))
}

// RefreshTokens exchanges a valid refresh token for a fresh pair.
func RefreshTokens(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("refresh_token is required", nil))
		return
	}

	claims, err := auth.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired refresh token", nil))
		return
	}

	id, err := bson.ObjectIDFromHex(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token subject", nil))
		return
	}
	customer, err := mongo.GetCustomerByID(c.Request.Context(), id)
	if err != nil || !customer.IsActive() {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Account no longer available", nil))
		return
	}

	tokens, err := issueTokens(customer)
	if err != nil {
		logger.L.Errorf("failed to sign tokens for %s: %v", customer.Email, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to refresh session", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(tokens))
}

func GetProfile(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token subject", nil))
		return
	}

	customer, err := mongo.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Account not found", nil))
			return
		}
		logger.L.Errorf("failed to fetch customer %s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch profile", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(customer))
}

func ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("current_password and new_password are required", nil))
		return
	}

	id, err := bson.ObjectIDFromHex(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token subject", nil))
		return
	}

	ctx := c.Request.Context()
	customer, err := mongo.GetCustomerByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Account not found", nil))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.CurrentPassword)) != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Current password is incorrect", nil))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.L.Errorf("failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to change password", nil))
		return
	}
	if err := mongo.UpdateCustomerPassword(ctx, id, string(hashed)); err != nil {
		logger.L.Errorf("failed to update password for %s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to change password", nil))
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse("Password updated"))
}

func issueTokens(customer *models.Customer) (*models.TokenResponse, error) {
	access, err := auth.NewAccessToken(customer.ID.Hex(), customer.Email, customer.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.NewRefreshToken(customer.ID.Hex(), customer.Email, customer.Role)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}
