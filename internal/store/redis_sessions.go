package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisSessions implements SessionStore on Redis so sessions survive across server replicas.
// Expiring sessions are stored with a matching key TTL.
type RedisSessions struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{
		client: client,
		now:    time.Now,
	}
}

func (r *RedisSessions) Save(ctx context.Context, session domain.Session) error {
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return nil // already expired, nothing worth storing
		}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(session.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisSessions) Get(ctx context.Context, token string) (domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("redis get failed: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session failed: %w", err)
	}
	if session.IsExpired(r.now()) {
		return domain.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (r *RedisSessions) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
