// concurrency/handler.go
package concurrency

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simbuah/go-api-http-client/logger"
)

// ConcurrencyHandler controls the number of concurrent HTTP requests.
// A permit is held only for the duration of a single transport send.
type ConcurrencyHandler struct {
	sem            chan struct{}
	logger         logger.Logger
	acquireTimeout time.Duration
	lock           sync.Mutex
	active         map[uuid.UUID]time.Time
	Metrics        *ConcurrencyMetrics
}

// NewConcurrencyHandler initializes a new ConcurrencyHandler with the given
// concurrency limit, logger, and concurrency metrics. A limit below MinConcurrency
// falls back to DefaultMaxConcurrency; nil metrics are allocated.
func NewConcurrencyHandler(limit int, log logger.Logger, metrics *ConcurrencyMetrics) *ConcurrencyHandler {
	if limit < MinConcurrency {
		limit = DefaultMaxConcurrency
	}
	if metrics == nil {
		metrics = &ConcurrencyMetrics{}
	}
	return &ConcurrencyHandler{
		sem:            make(chan struct{}, limit),
		logger:         log,
		acquireTimeout: PermitAcquireTimeout,
		active:         make(map[uuid.UUID]time.Time),
		Metrics:        metrics,
	}
}

// Limit returns the maximum number of permits.
func (ch *ConcurrencyHandler) Limit() int {
	return cap(ch.sem)
}

// ActivePermits returns the number of permits currently held.
func (ch *ConcurrencyHandler) ActivePermits() int {
	return len(ch.sem)
}

// RequestIDKey is type used as a key for storing and retrieving
// request-specific identifiers from a context.Context object. The value
// associated with this key is the UUID of the permit held by the request.
type RequestIDKey struct{}

// RequestIDFromContext returns the permit request ID stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RequestIDKey{}).(uuid.UUID)
	return id, ok
}
