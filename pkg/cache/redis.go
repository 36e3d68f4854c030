package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisNamespace prefixes every key written by [RedisCache].
const DefaultRedisNamespace = "addax:"

// RedisCache stores entries in redis with native expiry.
type RedisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache connects lazily to the server named by url, e.g.
// "redis://localhost:6379/0". No command is sent until first use.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, backendErr("redis", "open", err)
	}
	return NewRedisCacheFromClient(redis.NewClient(opts)), nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership and closes it on Close.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, namespace: DefaultRedisNamespace}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return backendErr("redis", "ping", c.client.Ping(ctx).Err())
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, backendErr("redis", "get", err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return backendErr("redis", "set", c.client.Set(ctx, c.key(key), data, expiration(ttl)).Err())
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return backendErr("redis", "delete", c.client.Del(ctx, c.key(key)).Err())
}

// Clear deletes every key in the cache namespace and returns how many were
// removed.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	count := 0
	iter := c.client.Scan(ctx, 0, c.namespace+"*", 500).Iterator()
	var batch []string
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, batch...).Result()
		count += int(n)
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 500 {
			if err := flush(); err != nil {
				return count, backendErr("redis", "clear", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return count, backendErr("redis", "clear", err)
	}
	return count, backendErr("redis", "clear", flush())
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(k string) string {
	return c.namespace + k
}

// expiration clamps negative ttls to zero, which redis treats as no expiry.
func expiration(ttl time.Duration) time.Duration {
	if ttl < 0 {
		return 0
	}
	return ttl
}

var _ Cache = (*RedisCache)(nil)
