package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryClient is a process local cache backed by go-cache.
type MemoryClient struct {
	cache *gocache.Cache
}

var _ Client = &MemoryClient{}

func NewMemoryClient(defaultTTL, cleanupInterval time.Duration) *MemoryClient {
	return &MemoryClient{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (m *MemoryClient) Get(_ context.Context, key string) ([]byte, error) {
	if x, found := m.cache.Get(key); found {
		return x.([]byte), nil
	}
	return nil, ErrCacheMiss
}

func (m *MemoryClient) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *MemoryClient) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *MemoryClient) ItemCount() int {
	return m.cache.ItemCount()
}
