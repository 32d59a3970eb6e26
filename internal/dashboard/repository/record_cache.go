package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotKey = "score_records"
	defaultTTL  = 10 * time.Minute
)

// RecordCache holds the most recent record snapshot for a bounded time.
type RecordCache interface {
	Get(ctx context.Context) (*entity.RecordSnapshot, bool)
	Set(ctx context.Context, snapshot *entity.RecordSnapshot)
}

type memoryRecordCache struct {
	inmemoryCache *cache.Cache
}

// NewMemoryRecordCache creates a process-local cache whose entries expire after ttl.
func NewMemoryRecordCache(ttl time.Duration) RecordCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &memoryRecordCache{inmemoryCache: cache.New(ttl, 2*ttl)}
}

func (c *memoryRecordCache) Get(_ context.Context) (*entity.RecordSnapshot, bool) {
	v, found := c.inmemoryCache.Get(snapshotKey)
	if !found {
		return nil, false
	}
	snapshot, ok := v.(*entity.RecordSnapshot)
	return snapshot, ok
}

func (c *memoryRecordCache) Set(_ context.Context, snapshot *entity.RecordSnapshot) {
	c.inmemoryCache.SetDefault(snapshotKey, snapshot)
}

type redisRecordCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisRecordCache creates a cache shared by every replica through Redis.
func NewRedisRecordCache(client *redis.Client, key string, ttl time.Duration, log *logger.Logger) RecordCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &redisRecordCache{client: client, key: key, ttl: ttl, log: log}
}

func (c *redisRecordCache) Get(ctx context.Context) (*entity.RecordSnapshot, bool) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "Failed to read record snapshot from redis", logger.ErrorField(err))
		}
		return nil, false
	}

	var snapshot entity.RecordSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.log.WarnContext(ctx, "Failed to decode cached record snapshot", logger.ErrorField(err))
		return nil, false
	}
	return &snapshot, true
}

func (c *redisRecordCache) Set(ctx context.Context, snapshot *entity.RecordSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to encode record snapshot", logger.ErrorField(err))
		return
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "Failed to write record snapshot to redis", logger.ErrorField(err))
	}
}
