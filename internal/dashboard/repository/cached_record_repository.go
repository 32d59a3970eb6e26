package repository

import (
	"context"
	"time"

	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const sharedFetchTimeout = 30 * time.Second

type cachedRecordRepository struct {
	inner        RecordRepository
	cache        RecordCache
	log          *logger.Logger
	group        singleflight.Group
	now          func() time.Time
	fetchTimeout time.Duration
}

// NewCachedRecordRepository serves records from cache while it is fresh and refetches from inner otherwise.
// Concurrent misses share a single fetch, which outlives the caller that started it
// but is bounded by its own timeout.
func NewCachedRecordRepository(inner RecordRepository, cache RecordCache, log *logger.Logger) RecordRepository {
	return &cachedRecordRepository{
		inner:        inner,
		cache:        cache,
		log:          log,
		now:          time.Now,
		fetchTimeout: sharedFetchTimeout,
	}
}

func (r *cachedRecordRepository) FetchAll(ctx context.Context) ([]entity.ScoreRecord, error) {
	if snapshot, ok := r.cache.Get(ctx); ok {
		return snapshot.Records, nil
	}

	v, err, shared := r.group.Do(snapshotKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()

		if snapshot, ok := r.cache.Get(fetchCtx); ok {
			return snapshot, nil
		}
		records, err := r.inner.FetchAll(fetchCtx)
		if err != nil {
			return nil, err
		}
		snapshot := &entity.RecordSnapshot{Records: records, FetchedAt: r.now()}
		r.cache.Set(fetchCtx, snapshot)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := v.(*entity.RecordSnapshot)
	r.log.DebugContext(ctx, "Record cache refreshed",
		logger.IntField("records", len(snapshot.Records)),
		logger.Field("shared", shared),
		logger.Field("fetched_at", snapshot.FetchedAt),
	)
	return snapshot.Records, nil
}
