package redis

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis initializes Redis connection. An unreachable server is not an
// error: the caller falls back to the in-memory cache.
func InitRedis(ctx context.Context, addr, password string) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis at %s: %v. Using in-memory move cache.", addr, err)
		redisEnabled = false
		return nil
	}

	redisEnabled = true
	log.Println("[REDIS] Connected successfully")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// RedisCache stores search results in Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set stores a key-value pair with expiration
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key. A missing key is reported as domain.ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	return val, err
}

// Del deletes keys
func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}
