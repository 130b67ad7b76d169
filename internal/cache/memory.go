package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"shuul-console/internal/metrics"
)

// MemoryProvider backs the cache with an in-process TTL map. It is the
// default when no Redis is configured.
type MemoryProvider struct {
	name  string
	cache *ttlcache.Cache[string, []byte]
}

func NewMemoryProvider(name string) *MemoryProvider {
	c := ttlcache.New[string, []byte]()
	go c.Start()
	return &MemoryProvider{name: name, cache: c}
}

func (m *MemoryProvider) Get(_ context.Context, key string) ([]byte, error) {
	item := m.cache.Get(key)
	if item == nil {
		metrics.CacheMisses.WithLabelValues(m.name).Inc()
		return nil, ErrNotFound
	}
	metrics.CacheHits.WithLabelValues(m.name).Inc()
	return item.Value(), nil
}

func (m *MemoryProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *MemoryProvider) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *MemoryProvider) Close() error {
	m.cache.Stop()
	return nil
}
