// concurrency/handler_test.go
package concurrency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConcurrencyHandlerDefaults(t *testing.T) {
	ch := NewConcurrencyHandler(0, logger.NewNopLogger(), nil)

	assert.Equal(t, DefaultMaxConcurrency, ch.Limit())
	assert.NotNil(t, ch.Metrics)
}

func TestAcquireAndReleasePermit(t *testing.T) {
	ch := NewConcurrencyHandler(2, logger.NewNopLogger(), nil)

	ctx, id, err := ch.AcquireConcurrencyPermit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ch.ActivePermits())

	fromCtx, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, fromCtx)

	ch.ReleaseConcurrencyPermit(id)
	ch.ReleaseConcurrencyPermit(id)
	assert.Equal(t, 0, ch.ActivePermits(), "double release must not go negative")

	snap := ch.Metrics.Snapshot()
	assert.Equal(t, int64(1), snap.TotalRequests)
}

// TestAcquirePermitHonoursContext verifies a full pool blocks until the caller gives up.
func TestAcquirePermitHonoursContext(t *testing.T) {
	ch := NewConcurrencyHandler(1, logger.NewNopLogger(), nil)
	_, held, err := ch.AcquireConcurrencyPermit(context.Background())
	require.NoError(t, err)
	defer ch.ReleaseConcurrencyPermit(held)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err = ch.AcquireConcurrencyPermit(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPermitLimitIsRespected(t *testing.T) {
	const limit = 3
	ch := NewConcurrencyHandler(limit, logger.NewNopLogger(), nil)

	var inFlight, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, id, err := ch.AcquireConcurrencyPermit(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			ch.ReleaseConcurrencyPermit(id)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(limit))
	assert.Equal(t, int64(20), ch.Metrics.Snapshot().TotalRequests)
}

func TestMetricsSnapshot(t *testing.T) {
	m := &ConcurrencyMetrics{}
	m.RecordRetry()
	m.RecordRefresh(nil)
	m.RecordRefresh(errors.New("refresh rejected"))
	m.RecordResponseTime(10 * time.Millisecond)
	m.RecordResponseTime(30 * time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.TotalRetries)
	assert.Equal(t, int64(2), snap.TotalRefreshes)
	assert.Equal(t, int64(1), snap.TotalRefreshFailures)
	assert.Equal(t, 20*time.Millisecond, snap.AverageResponseTime)
}
