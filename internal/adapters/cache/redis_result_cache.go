package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pick-analytics-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pick-analytics:"

// RedisResultCache stores encoded analyses in Redis with a per-key TTL.
type RedisResultCache struct {
	Client *redis.Client
}

func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{Client: client}
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("dial redis %q: %w", addr, err)
	}
	return client, nil
}

func (r *RedisResultCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "result.cache.redis.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("redis result cache: client is nil")
	}

	b, err := r.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get redis result cache key=%q: %w", key, err)
	}

	return b, true, nil
}

func (r *RedisResultCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if r.Client == nil {
		return errors.New("redis result cache: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert redis result cache: empty key")
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("insert redis result cache key=%q: %w", key, err)
	}
	return nil
}
