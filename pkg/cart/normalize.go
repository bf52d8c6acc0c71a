package cart

import (
	"fmt"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StockUnlimited marks a product whose source carried no stock field; the
// cart treats it as having no ceiling.
const StockUnlimited = math.MaxInt

// NormalizedProduct is the cart-compatible view of whatever product shape
// an upstream source provides.
type NormalizedProduct struct {
	ID        string
	Name      string
	UnitPrice float64
	Stock     int
	ImageURL  string
}

// Field preference tables. Product data reaches the cart from several
// sources (catalog documents, legacy imports, inline payloads) whose field
// names never fully agreed; first present field wins.
var (
	idFields    = []string{"id", "producto_id", "productId", "_id"}
	nameFields  = []string{"title", "nombre", "name"}
	priceFields = []string{"unit_price", "price", "precio"}
	stockFields = []string{"stock", "stock_quantity", "cantidad", "stockQuantity"}
	imageFields = []string{"image", "urlImage", "url"}
)

// NormalizeProduct maps a raw product document onto the cart's line shape.
// Returns nil when no usable product id can be extracted.
func NormalizeProduct(raw map[string]any) *NormalizedProduct {
	if raw == nil {
		return nil
	}

	id := firstString(raw, idFields)
	if id == "" {
		return nil
	}

	name := firstString(raw, nameFields)
	if name == "" {
		name = fmt.Sprintf("Producto %s", id)
	}

	price, ok := firstNumber(raw, priceFields)
	if !ok || price < 0 {
		price = 0
	}

	stock := StockUnlimited
	if s, ok := firstNumber(raw, stockFields); ok {
		stock = int(s)
	}

	image := firstImage(raw)

	return &NormalizedProduct{
		ID:        id,
		Name:      name,
		UnitPrice: price,
		Stock:     stock,
		ImageURL:  image,
	}
}

func firstString(raw map[string]any, fields []string) string {
	for _, field := range fields {
		if v, ok := raw[field]; ok {
			if s := stringValue(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstNumber(raw map[string]any, fields []string) (float64, bool) {
	for _, field := range fields {
		if v, ok := raw[field]; ok {
			if n, ok := numberValue(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// firstImage resolves the line image. The dedicated url_imagen field wins,
// then the first entry of an images array, then the looser single-image
// fields.
func firstImage(raw map[string]any) string {
	if s := stringValue(raw["url_imagen"]); s != "" {
		return s
	}
	if s := firstGalleryImage(raw); s != "" {
		return s
	}
	return firstString(raw, imageFields)
}

// firstGalleryImage reads images[0]: either a plain URL string or an image
// document with a url field.
func firstGalleryImage(raw map[string]any) string {
	images, ok := raw["images"]
	if !ok {
		return ""
	}
	var first any
	switch list := images.(type) {
	case []any:
		if len(list) > 0 {
			first = list[0]
		}
	case bson.A:
		if len(list) > 0 {
			first = list[0]
		}
	case []string:
		if len(list) > 0 {
			first = list[0]
		}
	}
	if first == nil {
		return ""
	}
	if s := stringValue(first); s != "" {
		return s
	}
	switch doc := first.(type) {
	case map[string]any:
		return stringValue(doc["url"])
	case bson.M:
		return stringValue(doc["url"])
	}
	return ""
}

func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case bson.ObjectID:
		return value.Hex()
	case int:
		return strconv.Itoa(value)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return ""
}

func numberValue(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
