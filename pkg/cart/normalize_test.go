package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNormalizeProductFieldPreferences(t *testing.T) {
	raw := map[string]any{
		"id":          "p1",
		"producto_id": "ignored",
		"title":       "Café de grano",
		"nombre":      "ignored",
		"unit_price":  4990,
		"price":       1,
		"stock":       8,
		"url_imagen":  "https://cdn.example.com/cafe.jpg",
	}

	p := NormalizeProduct(raw)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Café de grano", p.Name)
	assert.InDelta(t, 4990, p.UnitPrice, 0.001)
	assert.Equal(t, 8, p.Stock)
	assert.Equal(t, "https://cdn.example.com/cafe.jpg", p.ImageURL)
}

func TestNormalizeProductFallbackFields(t *testing.T) {
	raw := map[string]any{
		"productId": 42,
		"nombre":    "Té verde",
		"precio":    "2990",
		"cantidad":  3,
	}

	p := NormalizeProduct(raw)
	require.NotNil(t, p)
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Té verde", p.Name)
	assert.InDelta(t, 2990, p.UnitPrice, 0.001)
	assert.Equal(t, 3, p.Stock)
}

func TestNormalizeProductWithoutIDReturnsNil(t *testing.T) {
	assert.Nil(t, NormalizeProduct(nil))
	assert.Nil(t, NormalizeProduct(map[string]any{"title": "sin id"}))
}

func TestNormalizeProductPlaceholderName(t *testing.T) {
	p := NormalizeProduct(map[string]any{"id": "p9"})
	require.NotNil(t, p)
	assert.Equal(t, "Producto p9", p.Name)
}

func TestNormalizeProductNegativeOrMissingPriceIsZero(t *testing.T) {
	p := NormalizeProduct(map[string]any{"id": "p1", "price": -100})
	require.NotNil(t, p)
	assert.Zero(t, p.UnitPrice)

	p = NormalizeProduct(map[string]any{"id": "p1"})
	require.NotNil(t, p)
	assert.Zero(t, p.UnitPrice)
}

func TestNormalizeProductMissingStockIsUnlimited(t *testing.T) {
	p := NormalizeProduct(map[string]any{"id": "p1"})
	require.NotNil(t, p)
	assert.Equal(t, StockUnlimited, p.Stock)
}

func TestNormalizeProductImageFromArrays(t *testing.T) {
	p := NormalizeProduct(map[string]any{
		"id":     "p1",
		"images": []any{map[string]any{"url": "https://cdn.example.com/1.jpg"}},
	})
	require.NotNil(t, p)
	assert.Equal(t, "https://cdn.example.com/1.jpg", p.ImageURL)

	p = NormalizeProduct(map[string]any{
		"id":     "p2",
		"images": []string{"https://cdn.example.com/2.jpg"},
	})
	require.NotNil(t, p)
	assert.Equal(t, "https://cdn.example.com/2.jpg", p.ImageURL)
}

func TestNormalizeProductImagePriority(t *testing.T) {
	// The gallery beats the loose single-image fields.
	p := NormalizeProduct(map[string]any{
		"id":     "p1",
		"images": []string{"https://cdn.example.com/primera.jpg"},
		"image":  "https://cdn.example.com/suelta.jpg",
		"url":    "https://cdn.example.com/otra.jpg",
	})
	require.NotNil(t, p)
	assert.Equal(t, "https://cdn.example.com/primera.jpg", p.ImageURL)

	// url_imagen beats everything, gallery included.
	p = NormalizeProduct(map[string]any{
		"id":         "p2",
		"url_imagen": "https://cdn.example.com/principal.jpg",
		"images":     []string{"https://cdn.example.com/primera.jpg"},
	})
	require.NotNil(t, p)
	assert.Equal(t, "https://cdn.example.com/principal.jpg", p.ImageURL)

	// An empty gallery falls through to the single-image fields.
	p = NormalizeProduct(map[string]any{
		"id":     "p3",
		"images": []any{},
		"image":  "https://cdn.example.com/suelta.jpg",
	})
	require.NotNil(t, p)
	assert.Equal(t, "https://cdn.example.com/suelta.jpg", p.ImageURL)
}

func TestNormalizeProductFromBSONDocument(t *testing.T) {
	oid := bson.NewObjectID()
	raw := map[string]any{
		"_id":    oid,
		"name":   "Taza",
		"price":  int32(3500),
		"stock":  int64(12),
		"images": bson.A{bson.M{"url": "https://cdn.example.com/taza.jpg"}},
	}

	p := NormalizeProduct(raw)
	require.NotNil(t, p)
	assert.Equal(t, oid.Hex(), p.ID)
	assert.Equal(t, "Taza", p.Name)
	assert.InDelta(t, 3500, p.UnitPrice, 0.001)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, "https://cdn.example.com/taza.jpg", p.ImageURL)
}
