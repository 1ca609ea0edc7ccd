package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest interface{}) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// RedisURLCache caches resolved file URLs in Redis. Cache failures are
// logged and treated as misses.
type RedisURLCache struct {
	rdb *redis.Client
}

// NewRedisURLCache returns nil when no Redis client is available
func NewRedisURLCache(rdb *redis.Client) *RedisURLCache {
	if rdb == nil {
		return nil
	}
	return &RedisURLCache{rdb: rdb}
}

func (c *RedisURLCache) GetURL(ctx context.Context, key string) (string, bool) {
	var url string
	found, err := GetCache(ctx, c.rdb, key, &url)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Redis cache read failed")
		return "", false
	}
	return url, found
}

func (c *RedisURLCache) SetURL(ctx context.Context, key, url string, ttl time.Duration) {
	if err := SetCache(ctx, c.rdb, key, url, ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Redis cache write failed")
	}
}

func (c *RedisURLCache) DeleteURL(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Warn("Redis cache delete failed")
	}
}
