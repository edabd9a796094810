// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestEnd logs the completion of an HTTP request, including the HTTP method, URL, status code, and duration.
func LogRequestEnd(log Logger, requestID string, method string, url string, statusCode int, duration time.Duration) {
	log.Debug("HTTP request completed",
		zap.String("event", "request_end"),
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration),
	)
}

// LogError logs an error encountered while executing an HTTP request.
func LogError(log Logger, event string, method string, url string, statusCode int, err error) {
	log.Warn("Error during HTTP request",
		zap.String("event", event),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
		zap.Error(err),
	)
}

// LogRetryAttempt logs a replay of a request after its credentials were renewed.
func LogRetryAttempt(log Logger, method string, url string, reason string) {
	log.Info("HTTP request retry",
		zap.String("event", "retry_attempt"),
		zap.String("method", method),
		zap.String("url", url),
		zap.String("reason", reason),
	)
}

// LogRequestQueued logs a request parked behind an in-flight token refresh.
func LogRequestQueued(log Logger, method string, url string, queueLength int) {
	log.Debug("Request queued awaiting token refresh",
		zap.String("event", "request_queued"),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("queue_length", queueLength),
	)
}

// LogTokenRefresh logs the outcome of a token refresh round-trip.
func LogTokenRefresh(log Logger, settled int, duration time.Duration, err error) {
	if err != nil {
		log.Warn("Access token refresh failed",
			zap.String("event", "token_refresh"),
			zap.Int("queued_requests", settled),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	log.Info("Access token refreshed",
		zap.String("event", "token_refresh"),
		zap.Int("queued_requests", settled),
		zap.Duration("duration", duration),
	)
}
