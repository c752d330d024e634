package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/tedytech/backoffice-service/internal/persistence"
)

// SnapshotCache keeps computed metric snapshots in redis for a short TTL so
// rapid dashboard refreshes do not rescan every collection. It is purely an
// internal optimization: a miss or a cache failure falls through to a full
// recomputation.
type SnapshotCache struct {
	redis  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache builds the cache; a zero TTL disables it.
func NewSnapshotCache(redis *persistence.Redis, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	return &SnapshotCache{redis: redis, ttl: ttl, logger: logger}
}

func (c *SnapshotCache) enabled() bool {
	return c != nil && c.ttl > 0 && c.redis != nil && c.redis.Client != nil
}

// Get loads a snapshot into dest, reporting whether it was present.
func (c *SnapshotCache) Get(ctx context.Context, key string, dest any) bool {
	if !c.enabled() {
		return false
	}
	raw, err := c.redis.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Debug("snapshot cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a snapshot, logging failures instead of surfacing them.
func (c *SnapshotCache) Set(ctx context.Context, key string, val any) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.logger.Debug("snapshot cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("snapshot cache write failed", zap.String("key", key), zap.Error(err))
	}
}
