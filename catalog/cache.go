package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"adam/config"
	"adam/logging"
	"adam/metrics"
	"adam/types"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig configures the Redis connection backing the catalog cache
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping to verify
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// CachedLoader is a read-through Redis cache in front of another Loader.
// Cache faults fall back to the underlying loader.
type CachedLoader struct {
	next   Loader
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedLoader wraps next. A non-positive ttl uses config.DefaultCacheTTL.
func NewCachedLoader(next Loader, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedLoader {
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	return &CachedLoader{next: next, client: client, ttl: ttl, logger: logging.OrNop(logger)}
}

func languagesKey() string {
	return config.CacheKeyPrefix + "languages"
}

func recordsKey(language string) string {
	return config.CacheKeyPrefix + "records:" + language
}

// ListLanguages implements Loader
func (c *CachedLoader) ListLanguages(ctx context.Context) ([]string, error) {
	var langs []string
	if c.get(ctx, languagesKey(), &langs) {
		return langs, nil
	}

	langs, err := c.next.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, languagesKey(), langs)
	return langs, nil
}

// LoadArticles implements Loader. Load failures are not cached.
func (c *CachedLoader) LoadArticles(ctx context.Context, language string) ([]types.Record, error) {
	var records []types.Record
	if c.get(ctx, recordsKey(language), &records) {
		return records, nil
	}

	records, err := c.next.LoadArticles(ctx, language)
	if err != nil {
		return nil, err
	}
	c.set(ctx, recordsKey(language), records)
	return records, nil
}

// Invalidate drops the cached records for language, plus the cached
// language list
func (c *CachedLoader) Invalidate(ctx context.Context, language string) error {
	if err := c.client.Del(ctx, recordsKey(language), languagesKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", language, err)
	}
	c.logger.Info("Catalog cache invalidated", zap.String("language", language))
	return nil
}

// InvalidateAll drops every cached catalog entry
func (c *CachedLoader) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, config.CacheKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	c.logger.Info("Catalog cache flushed", zap.Int("keys", len(keys)))
	return nil
}

func (c *CachedLoader) get(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup("miss")
		return false
	}
	if err != nil {
		metrics.RecordCacheLookup("error")
		c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		metrics.RecordCacheLookup("error")
		c.logger.Warn("Catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	metrics.RecordCacheLookup("hit")
	return true
}

func (c *CachedLoader) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Catalog cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
