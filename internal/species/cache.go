package species

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache stores identifications keyed by perceptual hash. Implementations must
// be safe for concurrent use; a lost update on a simultaneous identical-hash
// insert is tolerated since both writers hold the same value.
type Cache interface {
	Get(ctx context.Context, key string) (Identification, bool)
	Set(ctx context.Context, key string, id Identification)
}

// MemoryCache is the default cache: an unbounded in-process map that lives
// for the whole process lifetime. Entries never expire or evict.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Identification
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Identification)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Identification, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.entries[key]
	return id, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, id Identification) {
	c.mu.Lock()
	c.entries[key] = id
	c.mu.Unlock()
}

// Len reports the number of cached identifications.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

const redisKeyPrefix = "species:"

// RedisCache shares identifications across processes. Entries are stored
// without TTL for parity with the in-memory default. Cache errors degrade to
// a miss; they never abort an identification.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger.Named("species_cache")}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Identification, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.Error(err))
		}
		return Identification{}, false
	}
	var id Identification
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		c.logger.Warn("cache entry corrupt", zap.Error(err))
		return Identification{}, false
	}
	return id, true
}

func (c *RedisCache) Set(ctx context.Context, key string, id Identification) {
	data, err := json.Marshal(id)
	if err != nil {
		c.logger.Warn("cache serialize failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.Error(err))
	}
}
