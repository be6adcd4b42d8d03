package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList remembers session tokens that were signed out before they expired.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryRevocationList keeps revoked token ids in process memory.
type MemoryRevocationList struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{items: make(map[string]time.Time), now: time.Now}
}

func (l *MemoryRevocationList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, exp := range l.items {
		if !exp.After(now) {
			delete(l.items, id)
		}
	}
	if until.After(now) {
		l.items[tokenID] = until
	}
	return nil
}

func (l *MemoryRevocationList) Revoked(_ context.Context, tokenID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp, ok := l.items[tokenID]
	return ok && exp.After(l.now()), nil
}

const redisKeyPrefix = "eatery:revoked:"

// RedisRevocationList stores revoked token ids in redis with a TTL matching
// the token expiry, so several instances share the same list.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList connects to the redis instance at rawURL.
func NewRedisRevocationList(rawURL string) (*RedisRevocationList, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisRevocationList{client: redis.NewClient(opts)}, nil
}

func (l *RedisRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, redisKeyPrefix+tokenID, 1, ttl).Err()
}

func (l *RedisRevocationList) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, redisKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close releases the redis connection pool.
func (l *RedisRevocationList) Close() error {
	return l.client.Close()
}
