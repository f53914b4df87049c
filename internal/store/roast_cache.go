package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "roast:"

// RoastCache stores generated roasts keyed by transcript content.
type RoastCache interface {
	// Get reports found=false on a miss; err is reserved for transport failures.
	Get(ctx context.Context, key string) (roast string, found bool, err error)
	Set(ctx context.Context, key, roast string) error
	Close() error
}

// CacheKey hashes the model together with the transcript text. A roast is
// only reused for the model that wrote it.
func CacheKey(text, model string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

type redisRoastCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisRoastCache(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) RoastCache {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &redisRoastCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// NewRedisClient parses url and pings the server before returning the client.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *redisRoastCache) Get(ctx context.Context, key string) (string, bool, error) {
	roast, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get roast: %w", err)
	}
	return roast, true, nil
}

func (c *redisRoastCache) Set(ctx context.Context, key, roast string) error {
	if err := c.client.Set(ctx, c.prefix+key, roast, c.ttl).Err(); err != nil {
		return fmt.Errorf("set roast: %w", err)
	}
	c.logger.DebugContext(ctx, "cached roast", "key", key, "ttl", c.ttl)
	return nil
}

func (c *redisRoastCache) Close() error {
	return c.client.Close()
}

// NoopRoastCache never hits and discards writes.
type NoopRoastCache struct{}

func (NoopRoastCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NoopRoastCache) Set(context.Context, string, string) error         { return nil }
func (NoopRoastCache) Close() error                                      { return nil }
