package store

import (
	"context"
	"sync"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
)

// MemoryAccounts implements AccountStore with an id index and an email index
type MemoryAccounts struct {
	mu      sync.RWMutex
	byID    map[int64]domain.Account
	byEmail map[string]int64
	lastID  int64
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{
		byID:    make(map[int64]domain.Account),
		byEmail: make(map[string]int64),
	}
}

func (s *MemoryAccounts) Create(_ context.Context, a domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Email = domain.NormalizeEmail(a.Email)
	if _, taken := s.byEmail[a.Email]; taken {
		return domain.Account{}, ErrEmailTaken
	}

	s.lastID++
	a.ID = s.lastID
	s.byID[a.ID] = a
	s.byEmail[a.Email] = a.ID
	return a, nil
}

func (s *MemoryAccounts) FindByEmail(_ context.Context, email string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.Account{}, ErrAccountNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryAccounts) FindByID(_ context.Context, id int64) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.byID[id]; ok {
		return a, nil
	}
	return domain.Account{}, ErrAccountNotFound
}
