package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache guarda resultados agregados serializados con expiracion.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type memoryStatsCache struct {
	mu    sync.Mutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryStatsCache() StatsCache {
	return &memoryStatsCache{items: make(map[string]cacheEntry)}
}

func (c *memoryStatsCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().UTC().After(e.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *memoryStatsCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(key) == "" {
		return nil
	}
	c.items[key] = cacheEntry{value: value, expiresAt: time.Now().UTC().Add(ttl)}
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisStatsCache struct {
	client redisKV
	prefix string
}

// NewStatsCache usa Redis cuando hay cliente y memoria si no.
func NewStatsCache(client *redis.Client) StatsCache {
	if client == nil {
		return NewMemoryStatsCache()
	}
	return &redisStatsCache{client: client, prefix: "admin:cache:"}
}

func (c *redisStatsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *redisStatsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}
