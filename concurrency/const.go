// concurrency/const.go
package concurrency

import "time"

const (
	// DefaultMaxConcurrency is the number of in-flight requests allowed when no limit is configured.
	DefaultMaxConcurrency = 10

	// MinConcurrency represents the minimum allowed concurrent requests.
	MinConcurrency = 1

	// PermitAcquireTimeout bounds how long a request waits for a free slot before failing.
	PermitAcquireTimeout = 10 * time.Second
)
