// concurrency/metrics.go
package concurrency

import (
	"sync"
	"time"
)

// ConcurrencyMetrics captures counters for the client's interactions with the API.
// All methods are safe for concurrent use.
type ConcurrencyMetrics struct {
	mu sync.Mutex

	TotalRequests        int64         // Permits granted, one per transport send
	TotalRetries         int64         // Requests replayed after a token refresh
	TotalRefreshes       int64         // Refresh calls issued
	TotalRefreshFailures int64         // Refresh calls that ended the session
	PermitWaitTime       time.Duration // Total time spent waiting for permits
	ResponseTime         struct {
		Total time.Duration
		Count int64
	}
}

// MetricsSnapshot is a point-in-time copy of ConcurrencyMetrics.
type MetricsSnapshot struct {
	TotalRequests        int64
	TotalRetries         int64
	TotalRefreshes       int64
	TotalRefreshFailures int64
	PermitWaitTime       time.Duration
	AverageResponseTime  time.Duration
}

func (m *ConcurrencyMetrics) recordPermit(waited time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRequests++
	m.PermitWaitTime += waited
}

// RecordResponseTime adds one observation of time spent on the wire.
func (m *ConcurrencyMetrics) RecordResponseTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseTime.Total += d
	m.ResponseTime.Count++
}

// RecordRetry counts one replayed request.
func (m *ConcurrencyMetrics) RecordRetry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRetries++
}

// RecordRefresh counts one refresh call and whether it failed.
func (m *ConcurrencyMetrics) RecordRefresh(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRefreshes++
	if err != nil {
		m.TotalRefreshFailures++
	}
}

// Snapshot returns a consistent copy of the counters.
func (m *ConcurrencyMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := MetricsSnapshot{
		TotalRequests:        m.TotalRequests,
		TotalRetries:         m.TotalRetries,
		TotalRefreshes:       m.TotalRefreshes,
		TotalRefreshFailures: m.TotalRefreshFailures,
		PermitWaitTime:       m.PermitWaitTime,
	}
	if m.ResponseTime.Count > 0 {
		s.AverageResponseTime = m.ResponseTime.Total / time.Duration(m.ResponseTime.Count)
	}
	return s
}
