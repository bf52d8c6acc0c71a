package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProductImage is one image record attached to a product. Images are
// managed separately in the admin media panel, so they carry their own id.
type ProductImage struct {
	ID       bson.ObjectID `json:"id" bson:"id"`
	URL      string        `json:"url" bson:"url" validate:"required,url"`
	AltText  string        `json:"alt_text,omitempty" bson:"alt_text,omitempty"`
	Position int           `json:"position" bson:"position" validate:"gte=0"`
}

// Product represents a storefront catalog product. Prices are CLP.
type Product struct {
	ID          bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string         `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Description string         `json:"description" bson:"description" validate:"max=2000"`
	Category    string         `json:"category" bson:"category" validate:"required,min=2,max=100"`
	Price       float64        `json:"price" bson:"price" validate:"required,gt=0"`
	Stock       int            `json:"stock" bson:"stock" validate:"gte=0"`
	Images      []ProductImage `json:"images" bson:"images"`
	Tags        []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	Status      string         `json:"status" bson:"status" validate:"required,oneof=active inactive deleted"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	Category    string   `json:"category" binding:"required,min=2,max=100"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Images      []string `json:"images" binding:"dive,url"`
	Tags        []string `json:"tags"`
}

func (req *CreateProductRequest) ToProduct() *Product {
	now := time.Now()
	product := &Product{
		ID:          bson.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      make([]ProductImage, 0, len(req.Images)),
		Tags:        req.Tags,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, url := range req.Images {
		product.Images = append(product.Images, ProductImage{
			ID:       bson.NewObjectID(),
			URL:      url,
			Position: i,
		})
	}
	return product
}

type AddProductImagesRequest struct {
	Images []string `json:"images" binding:"required,min=1,dive,url"`
}

// FirstImageURL returns the display image for listings, or "" when the
// product has no images.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

func (p *Product) IsInStock() bool {
	return p.Stock > 0 && p.Status == "active"
}

func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
