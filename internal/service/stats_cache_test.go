package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisKVClient struct {
	values     map[string]string
	lastSetKey string
	lastSetVal interface{}
	lastSetTTL time.Duration

	getErr error
	setErr error
}

func (m *mockRedisKVClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	v, ok := m.values[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetVal = value
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func TestMemoryStatsCache_Basics(t *testing.T) {
	cache := NewMemoryStatsCache()
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got %v,%v", ok, err)
	}
	if err := cache.Set(ctx, "stats", []byte("v1"), 50*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	v, ok, err := cache.Get(ctx, "stats")
	if err != nil || !ok || string(v) != "v1" {
		t.Fatalf("expected hit, got %q,%v,%v", v, ok, err)
	}

	time.Sleep(70 * time.Millisecond)
	if _, ok, _ := cache.Get(ctx, "stats"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestRedisStatsCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss maps redis.Nil", func(t *testing.T) {
		c := &redisStatsCache{client: &mockRedisKVClient{}, prefix: "admin:cache:"}
		if _, ok, err := c.Get(ctx, "stats"); err != nil || ok {
			t.Fatalf("expected clean miss, got %v,%v", ok, err)
		}
	})

	t.Run("hit uses prefix", func(t *testing.T) {
		c := &redisStatsCache{client: &mockRedisKVClient{values: map[string]string{"admin:cache:stats": "payload"}}, prefix: "admin:cache:"}
		v, ok, err := c.Get(ctx, "stats")
		if err != nil || !ok || string(v) != "payload" {
			t.Fatalf("unexpected result %q,%v,%v", v, ok, err)
		}
	})

	t.Run("errors propagate", func(t *testing.T) {
		c := &redisStatsCache{client: &mockRedisKVClient{getErr: errors.New("down")}, prefix: "admin:cache:"}
		if _, _, err := c.Get(ctx, "stats"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("set stores with ttl", func(t *testing.T) {
		mock := &mockRedisKVClient{}
		c := &redisStatsCache{client: mock, prefix: "admin:cache:"}
		if err := c.Set(ctx, "stats", []byte("x"), time.Minute); err != nil {
			t.Fatalf("set: %v", err)
		}
		if mock.lastSetKey != "admin:cache:stats" || mock.lastSetTTL != time.Minute {
			t.Fatalf("unexpected set call %q %v", mock.lastSetKey, mock.lastSetTTL)
		}
	})
}
