package cart

import (
	"context"
	"encoding/json"

	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
)

// Store is the session cart: an insertion-ordered collection of lines,
// one per product id, persisted whole to Storage after every mutation.
//
// Mutating operations never return errors. Persistence failures are
// logged and the in-memory state keeps the change, so the cart stays
// usable for the rest of the session even when Redis is unhappy.
type Store struct {
	sessionID string
	storage   Storage
	lines     []models.CartLine
}

// Open loads the session's cart. An unreadable or corrupt snapshot is
// logged and treated as an empty cart.
func Open(ctx context.Context, sessionID string, storage Storage) *Store {
	s := &Store{sessionID: sessionID, storage: storage}

	snapshot, err := storage.Load(ctx, sessionID)
	if err != nil {
		logger.L.Warnf("cart %s: failed to load snapshot: %v", sessionID, err)
		return s
	}
	if len(snapshot) == 0 {
		return s
	}
	if err := json.Unmarshal(snapshot, &s.lines); err != nil {
		logger.L.Warnf("cart %s: discarding corrupt snapshot: %v", sessionID, err)
		s.lines = nil
	}
	return s
}

// Add merges quantity into the line for the product, creating it if
// needed. The resulting quantity is clamped to [1, stock], where stock is
// the ceiling known from this call's product data. A raw product with no
// usable id is silently ignored.
//
// Note the floor: stock 0 (or negative) still yields quantity 1. That is
// the store's long-standing best-effort-add behavior and checkout is the
// layer that rejects genuinely unavailable items.
func (s *Store) Add(ctx context.Context, raw map[string]any, quantity int) {
	product := NormalizeProduct(raw)
	if product == nil {
		return
	}

	if existing := s.find(product.ID); existing != nil {
		existing.Quantity = clampQuantity(existing.Quantity+quantity, product.Stock)
	} else {
		s.lines = append(s.lines, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.UnitPrice,
			ImageURL:  product.ImageURL,
			Quantity:  clampQuantity(quantity, product.Stock),
		})
	}
	s.persist(ctx)
}

// UpdateQuantity sets the line's quantity to max(0, quantity); a line at
// zero is removed rather than kept as a zero-row. Unknown ids are no-ops.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	line := s.find(productID)
	if line == nil {
		return
	}
	if quantity <= 0 {
		s.remove(productID)
	} else {
		line.Quantity = quantity
	}
	s.persist(ctx)
}

// Remove deletes the line unconditionally; no-op when absent.
func (s *Store) Remove(ctx context.Context, productID string) {
	if s.find(productID) == nil {
		return
	}
	s.remove(productID)
	s.persist(ctx)
}

// Clear empties the cart and drops the stored snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.lines = nil
	if err := s.storage.Delete(ctx, s.sessionID); err != nil {
		logger.L.Warnf("cart %s: failed to delete snapshot: %v", s.sessionID, err)
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	var total int
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity over all lines.
func (s *Store) Subtotal() float64 {
	var subtotal float64
	for _, line := range s.lines {
		subtotal += line.TotalPrice()
	}
	return subtotal
}

// View packages the cart for API responses.
func (s *Store) View() models.CartView {
	return models.CartView{
		SessionID:  s.sessionID,
		Items:      s.Lines(),
		TotalItems: s.TotalItems(),
		Subtotal:   s.Subtotal(),
	}
}

func (s *Store) find(productID string) *models.CartLine {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *Store) remove(productID string) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

func (s *Store) persist(ctx context.Context) {
	snapshot, err := json.Marshal(s.lines)
	if err != nil {
		logger.L.Warnf("cart %s: failed to serialize snapshot: %v", s.sessionID, err)
		return
	}
	if err := s.storage.Save(ctx, s.sessionID, snapshot); err != nil {
		logger.L.Warnf("cart %s: failed to persist snapshot: %v", s.sessionID, err)
	}
}

func clampQuantity(quantity, stock int) int {
	if quantity > stock {
		quantity = stock
	}
	if quantity < 1 {
		quantity = 1
	}
	return quantity
}
