package store

import (
	"context"
	"slices"
	"sync"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
)

// MemoryCarts implements CartStore. Each line list holds at most one line per product.
type MemoryCarts struct {
	mu    sync.RWMutex
	carts map[int64][]domain.CartLine
}

func NewMemoryCarts() *MemoryCarts {
	return &MemoryCarts{carts: make(map[int64][]domain.CartLine)}
}

func (s *MemoryCarts) Lines(_ context.Context, userID int64) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.carts[userID]), nil
}

func (s *MemoryCarts) AddLine(_ context.Context, userID, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if i := lineIndex(lines, productID); i >= 0 {
		if lines[i].Quantity > domain.MaxQuantity-quantity {
			return ErrQuantityLimit
		}
		lines[i].Quantity += quantity
		return nil
	}
	if quantity > domain.MaxQuantity {
		return ErrQuantityLimit
	}
	s.carts[userID] = append(lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

func (s *MemoryCarts) SetQuantity(_ context.Context, userID, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	i := lineIndex(lines, productID)
	if i < 0 {
		return ErrLineNotFound
	}
	if quantity == 0 {
		s.carts[userID] = slices.Delete(lines, i, i+1)
		return nil
	}
	lines[i].Quantity = quantity
	return nil
}

func (s *MemoryCarts) RemoveLine(_ context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	i := lineIndex(lines, productID)
	if i < 0 {
		return ErrLineNotFound
	}
	s.carts[userID] = slices.Delete(lines, i, i+1)
	return nil
}

func (s *MemoryCarts) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

func lineIndex(lines []domain.CartLine, productID int64) int {
	return slices.IndexFunc(lines, func(l domain.CartLine) bool { return l.ProductID == productID })
}
