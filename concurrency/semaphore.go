// concurrency/semaphore.go
/* Package concurrency provides utilities to manage concurrency control. The handler
ensures no more than a certain number of requests are on the wire at the same time.
This is managed using a semaphore. */
package concurrency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AcquireConcurrencyPermit acquires a permit to send one request. It generates a unique
// request ID for tracking and waits at most PermitAcquireTimeout (or until ctx ends).
//
// The returned context carries the request ID under RequestIDKey. Every successful call
// must be paired with ReleaseConcurrencyPermit.
//
// Example:
//
//	ctx, requestID, err := handler.AcquireConcurrencyPermit(ctx)
//	if err != nil {
//	    return err
//	}
//	defer handler.ReleaseConcurrencyPermit(requestID)
func (ch *ConcurrencyHandler) AcquireConcurrencyPermit(ctx context.Context) (context.Context, uuid.UUID, error) {
	permitAcquisitionStart := time.Now()
	requestID := uuid.New()

	if err := ctx.Err(); err != nil {
		return ctx, requestID, fmt.Errorf("acquiring concurrency permit: %w", err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, ch.acquireTimeout)
	defer cancel()

	select {
	case ch.sem <- struct{}{}:
		waited := time.Since(permitAcquisitionStart)
		ch.lock.Lock()
		ch.active[requestID] = time.Now()
		ch.lock.Unlock()
		ch.Metrics.recordPermit(waited)

		ch.logger.Debug("Acquired concurrency permit",
			zap.String("request_id", requestID.String()),
			zap.Duration("acquisition_time", waited),
			zap.Int("utilized_permits", len(ch.sem)),
			zap.Int("available_permits", cap(ch.sem)-len(ch.sem)),
		)

		return context.WithValue(ctx, RequestIDKey{}, requestID), requestID, nil

	case <-ctxWithTimeout.Done():
		ch.logger.Warn("Failed to acquire concurrency permit", zap.Error(ctxWithTimeout.Err()))
		return ctx, requestID, fmt.Errorf("acquiring concurrency permit: %w", ctxWithTimeout.Err())
	}
}

// ReleaseConcurrencyPermit returns a permit to the pool. Releasing an unknown request ID
// is a no-op, so a double release cannot free a slot held by someone else.
func (ch *ConcurrencyHandler) ReleaseConcurrencyPermit(requestID uuid.UUID) {
	ch.lock.Lock()
	acquiredAt, ok := ch.active[requestID]
	if ok {
		delete(ch.active, requestID)
	}
	ch.lock.Unlock()

	if !ok {
		ch.logger.Warn("Release of unknown concurrency permit ignored", zap.String("request_id", requestID.String()))
		return
	}

	<-ch.sem
	held := time.Since(acquiredAt)
	ch.Metrics.RecordResponseTime(held)

	ch.logger.Debug("Released concurrency permit",
		zap.String("request_id", requestID.String()),
		zap.Duration("held", held),
		zap.Int("utilized_permits", len(ch.sem)),
		zap.Int("available_permits", cap(ch.sem)-len(ch.sem)),
	)
}
