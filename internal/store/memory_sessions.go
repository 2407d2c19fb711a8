package store

import (
	"context"
	"sync"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
)

// MemorySessions implements SessionStore in process memory.
// When constructed with a positive cleanup interval a background loop purges expired sessions.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func NewMemorySessions(cleanupInterval time.Duration) *MemorySessions {
	s := &MemorySessions{
		sessions:    make(map[string]domain.Session),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	if cleanupInterval > 0 {
		s.wg.Add(1)
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

func (s *MemorySessions) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemorySessions) expireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for token, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, token)
		}
	}
}

func (s *MemorySessions) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *MemorySessions) Get(_ context.Context, token string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok || session.IsExpired(s.now()) {
		return domain.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *MemorySessions) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Len reports how many sessions are held, expired ones included until the next cleanup.
func (s *MemorySessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background cleanup and waits for it to finish
func (s *MemorySessions) Close() error {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
	s.wg.Wait()
	return nil
}
