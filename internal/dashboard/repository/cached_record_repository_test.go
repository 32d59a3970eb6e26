package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepository struct {
	calls       atomic.Int32
	records     []entity.ScoreRecord
	err         error
	delay       time.Duration
	ctxErr      error
	hasDeadline bool
}

func (r *countingRepository) FetchAll(ctx context.Context) ([]entity.ScoreRecord, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.ctxErr = ctx.Err()
	_, r.hasDeadline = ctx.Deadline()
	if r.ctxErr != nil {
		return nil, r.ctxErr
	}
	return r.records, r.err
}

func testRecords() []entity.ScoreRecord {
	return []entity.ScoreRecord{{Date: date(2025, time.June, 2), Score: 61}}
}

func TestCachedRecordRepository_ServesFromCache(t *testing.T) {
	inner := &countingRepository{records: testRecords()}
	repo := NewCachedRecordRepository(inner, NewMemoryRecordCache(time.Minute), logger.NewNop())

	for i := 0; i < 3; i++ {
		records, err := repo.FetchAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	}

	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedRecordRepository_RefetchesAfterExpiry(t *testing.T) {
	inner := &countingRepository{records: testRecords()}
	repo := NewCachedRecordRepository(inner, NewMemoryRecordCache(20*time.Millisecond), logger.NewNop())

	_, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = repo.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedRecordRepository_ErrorsAreNotCached(t *testing.T) {
	inner := &countingRepository{err: errors.New("boom")}
	repo := NewCachedRecordRepository(inner, NewMemoryRecordCache(time.Minute), logger.NewNop())

	_, err := repo.FetchAll(context.Background())
	assert.Error(t, err)
	_, err = repo.FetchAll(context.Background())
	assert.Error(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedRecordRepository_CoalescesConcurrentMisses(t *testing.T) {
	inner := &countingRepository{records: testRecords(), delay: 50 * time.Millisecond}
	repo := NewCachedRecordRepository(inner, NewMemoryRecordCache(time.Minute), logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := repo.FetchAll(context.Background())
			assert.NoError(t, err)
			assert.Len(t, records, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestMemoryRecordCache(t *testing.T) {
	c := NewMemoryRecordCache(time.Minute)

	_, ok := c.Get(context.Background())
	assert.False(t, ok)

	snapshot := &entity.RecordSnapshot{Records: testRecords(), FetchedAt: time.Now()}
	c.Set(context.Background(), snapshot)

	got, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, snapshot, got)
}

func TestCachedRecordRepository_FetchSurvivesCanceledCaller(t *testing.T) {
	inner := &countingRepository{records: testRecords()}
	repo := NewCachedRecordRepository(inner, NewMemoryRecordCache(time.Minute), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := repo.FetchAll(ctx)

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, inner.ctxErr)
	assert.True(t, inner.hasDeadline)

	// the snapshot was cached for the next caller
	_, err = repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedRecordRepository_SharedFetchTimeout(t *testing.T) {
	inner := &countingRepository{records: testRecords(), delay: 30 * time.Millisecond}
	repo := NewCachedRecordRepository(inner, NewMemoryRecordCache(time.Minute), logger.NewNop())
	repo.(*cachedRecordRepository).fetchTimeout = 5 * time.Millisecond

	_, err := repo.FetchAll(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
