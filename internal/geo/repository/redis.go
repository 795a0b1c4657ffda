package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homegate_search/internal/geo/transport"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "homegate:geo:"

// RedisCache shares lookup hits between gateway replicas.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// NewRedisCacheFromURL connects using a redis:// or rediss:// URL.
func NewRedisCacheFromURL(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCache(redis.NewClient(opt), ttl), nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]transport.LookupResult, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var results []transport.LookupResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false, fmt.Errorf("decode cached lookup: %w", err)
	}
	return results, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, results []transport.LookupResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode lookup: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
