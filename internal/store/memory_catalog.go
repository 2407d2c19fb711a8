package store

import (
	"context"
	"slices"
	"sync"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
)

// MemoryCatalog implements CatalogStore with a slice kept in insertion order
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []domain.Product
	lastID   int64
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{}
}

func (s *MemoryCatalog) List(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products), nil
}

func (s *MemoryCatalog) Get(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.products[i], nil
	}
	return domain.Product{}, ErrProductNotFound
}

func (s *MemoryCatalog) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	p.ID = s.lastID
	s.products = append(s.products, p)
	return p, nil
}

func (s *MemoryCatalog) Update(_ context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	patch.Apply(&s.products[i])
	return s.products[i], nil
}

func (s *MemoryCatalog) Delete(_ context.Context, id int64) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	removed := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	return removed, nil
}

// indexOf must be called with s.mu held
func (s *MemoryCatalog) indexOf(id int64) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
}
