package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleClient = "cliente"
	RoleAdmin  = "admin"
)

// Customer represents a store account, either a shopper or a back-office
// admin (distinguished by Role).
type Customer struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string        `bson:"email" json:"email" validate:"required,email"`
	Password      string        `bson:"password" json:"-" validate:"required,min=8"` // Never expose in JSON
	FirstName     string        `bson:"first_name" json:"first_name" validate:"required,min=2,max=50"`
	LastName      string        `bson:"last_name" json:"last_name" validate:"required,min=2,max=50"`
	Phone         string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Role          string        `bson:"role" json:"role" validate:"required,oneof=cliente admin"`
	Addresses     []Address     `bson:"addresses" json:"addresses" validate:"dive"`
	EmailVerified bool          `bson:"email_verified" json:"email_verified"`
	AccountStatus string        `bson:"account_status" json:"account_status" validate:"required,oneof=active suspended deleted"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// SetTimestamps sets created_at on first call and always updates updated_at.
func (c *Customer) SetTimestamps() {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// GetFullName returns the customer's full name.
func (c *Customer) GetFullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) IsActive() bool {
	return c.AccountStatus == "active"
}

func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// GetDefaultAddress returns the first address marked default, or the first
// address if none is.
func (c *Customer) GetDefaultAddress() *Address {
	for i := range c.Addresses {
		if c.Addresses[i].IsDefault {
			return &c.Addresses[i]
		}
	}
	if len(c.Addresses) > 0 {
		return &c.Addresses[0]
	}
	return nil
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
