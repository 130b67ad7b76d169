package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"

	"shuul-console/internal/config"
	"shuul-console/internal/metrics"
)

// RedisProvider backs the cache with a Redis database so cached dashboard
// data survives restarts and is shared across replicas.
type RedisProvider struct {
	name   string
	client *redis.Client
}

func NewRedisProvider(name string, cfg *config.RedisConfig) (*RedisProvider, error) {
	client, err := newRedisClient(cfg, cfg.CacheIndex)
	if err != nil {
		return nil, err
	}

	collector := redisprometheus.NewCollector(metrics.Namespace, "cache_redis", client)
	if err := prometheus.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, fmt.Errorf("registering redis collector: %w", err)
		}
	}

	return &RedisProvider{name: name, client: client}, nil
}

// NewRedisClient builds a client for the given database, using sentinel
// failover when configured.
func NewRedisClient(cfg *config.RedisConfig, db int) (*redis.Client, error) {
	return newRedisClient(cfg, db)
}

func newRedisClient(cfg *config.RedisConfig, db int) (*redis.Client, error) {
	var client *redis.Client
	if cfg.Sentinel != nil {
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.Sentinel.MasterName,
			SentinelAddrs:    cfg.Sentinel.SentinelAddresses,
			SentinelUsername: cfg.Sentinel.SentinelUsername,
			SentinelPassword: cfg.Sentinel.SentinelPassword,
			Username:         cfg.Username,
			Password:         cfg.Password,
			DB:               db,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       db,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

func (r *RedisProvider) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.name+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues(r.name).Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	metrics.CacheHits.WithLabelValues(r.name).Inc()
	return value, nil
}

func (r *RedisProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.name+":"+key, value, ttl).Err()
}

func (r *RedisProvider) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.name+":"+key).Err()
}

func (r *RedisProvider) Close() error {
	return r.client.Close()
}
