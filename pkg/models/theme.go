package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StoreConfig is the single store-appearance document edited from the
// admin "customize store" panel and read by the public storefront.
type StoreConfig struct {
	ID             bson.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreName      string        `json:"store_name" bson:"store_name" validate:"required,max=100"`
	Tagline        string        `json:"tagline,omitempty" bson:"tagline,omitempty"`
	TemplateType   string        `json:"template_type" bson:"template_type" validate:"required,oneof=grid a b c d"`
	PrimaryColor   string        `json:"primary_color" bson:"primary_color"`
	SecondaryColor string        `json:"secondary_color" bson:"secondary_color"`
	BannerURL      string        `json:"banner_url,omitempty" bson:"banner_url,omitempty" validate:"omitempty,url"`
	LogoURL        string        `json:"logo_url,omitempty" bson:"logo_url,omitempty" validate:"omitempty,url"`
	ChatEnabled    bool          `json:"chat_enabled" bson:"chat_enabled"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}

// DefaultStoreConfig is returned before an admin has customized anything.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		StoreName:      "Vitrina",
		TemplateType:   "grid",
		PrimaryColor:   "#1f2937",
		SecondaryColor: "#f59e0b",
		ChatEnabled:    true,
		UpdatedAt:      time.Now(),
	}
}

type UpdateStoreConfigRequest struct {
	StoreName      string `json:"store_name" binding:"required,max=100"`
	Tagline        string `json:"tagline"`
	TemplateType   string `json:"template_type" binding:"required,oneof=grid a b c d"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	BannerURL      string `json:"banner_url" binding:"omitempty,url"`
	LogoURL        string `json:"logo_url" binding:"omitempty,url"`
	ChatEnabled    bool   `json:"chat_enabled"`
}
