package cache

import (
	"context"
	"fmt"
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the redis client with application-level helpers
type Cache struct {
	client *redis.Client
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func InitCache(config CacheConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		return Cache{}, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "host", config.Host, "port", config.Port)
	return Cache{client: client}, nil
}

func (c Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c Cache) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

func (c Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

// AddToTokenBlacklist records a revoked token until its natural expiry
func (c Cache) AddToTokenBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+tokenID, "1", ttl).Err()
}

func (c Cache) IsTokenBlacklisted(ctx context.Context, tokenID string) bool {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+tokenID).Result()
	if err != nil {
		logger.Warn("Cache:IsTokenBlacklisted:Error", "error", err)
		return false
	}
	return n > 0
}

// SetBestTimeResult caches a serialized best-time computation for a
// participant-set key
func (c Cache) SetBestTimeResult(ctx context.Context, key string, payload string, ttl time.Duration) error {
	return c.client.Set(ctx, constants.RedisKeyBestTimeCache+key, payload, ttl).Err()
}

func (c Cache) GetBestTimeResult(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, constants.RedisKeyBestTimeCache+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logger.Warn("Cache:GetBestTimeResult:Error", "error", err)
		return "", false
	}
	return val, true
}

// InvalidateBestTime drops all cached best-time results whose key starts
// with the given prefix (cache keys lead with the owning user ID)
func (c Cache) InvalidateBestTime(ctx context.Context, keyPrefix string) error {
	iter := c.client.Scan(ctx, 0, constants.RedisKeyBestTimeCache+keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c Cache) Client() *redis.Client {
	return c.client
}
