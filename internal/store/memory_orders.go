package store

import (
	"context"
	"slices"
	"sync"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
)

// MemoryOrders implements OrderStore as an append-only slice
type MemoryOrders struct {
	mu     sync.RWMutex
	orders []domain.Order
	lastID int64
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{}
}

func (s *MemoryOrders) Append(_ context.Context, o domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	o.ID = s.lastID
	o.Items = slices.Clone(o.Items)
	s.orders = append(s.orders, o)
	return o, nil
}

func (s *MemoryOrders) Get(_ context.Context, id int64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

func (s *MemoryOrders) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mine := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}
