// httpclient/refresh.go
package httpclient

import (
	"net/http"
	"sync"
)

// ResponseType selects how a response body is handed back to the caller.
type ResponseType int

const (
	ResponseJSON ResponseType = iota
	ResponseBlob
)

// RequestDescriptor is everything needed to send a request again: method, absolute URL,
// caller headers and the encoded body.
type RequestDescriptor struct {
	Method       string
	URL          string
	Header       http.Header
	Body         []byte
	ResponseType ResponseType
	Anonymous    bool

	retried   bool
	isRefresh bool
}

// Retried reports whether the request has already been replayed after a 401.
func (d *RequestDescriptor) Retried() bool {
	return d.retried
}

// PendingRequest is a request parked behind an in-flight refresh. Exactly one of
// Resolve or Reject is called when the refresh settles.
type PendingRequest struct {
	Descriptor *RequestDescriptor
	Generation uint64
	Resolve    func(accessToken string)
	Reject     func(err error)
}

type refreshOutcome int

const (
	refreshOwner refreshOutcome = iota
	refreshQueued
	refreshStale
	refreshExpired
)

// RefreshState coordinates token refreshes for one client. At most one refresh is in
// flight; requests failing meanwhile wait in the queue. Callbacks are never invoked
// while the lock is held.
type RefreshState struct {
	mu          sync.Mutex
	refreshing  bool
	queue       []*PendingRequest
	generation  uint64
	latestToken string
	lastErr     error
}

// NewRefreshState returns an idle RefreshState.
func NewRefreshState() *RefreshState {
	return &RefreshState{}
}

// InProgress reports whether a refresh call is outstanding.
func (s *RefreshState) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshing
}

// Pending returns the number of queued requests.
func (s *RefreshState) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Generation counts settled refresh cycles, failed ones included.
func (s *RefreshState) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// acquire decides the role of a request that just saw a 401. A running refresh always
// takes the request into its queue. Otherwise a request whose token predates the last
// cycle gets that cycle's outcome back: the new token, or the error that ended the session.
func (s *RefreshState) acquire(p *PendingRequest) (refreshOutcome, string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshing {
		s.queue = append(s.queue, p)
		return refreshQueued, "", len(s.queue), nil
	}
	if p.Generation < s.generation {
		if s.lastErr != nil {
			return refreshExpired, "", 0, s.lastErr
		}
		return refreshStale, s.latestToken, 0, nil
	}
	s.refreshing = true
	return refreshOwner, "", 0, nil
}

// release clears the flag, closes the cycle and hands back the drained queue in
// enqueue order.
func (s *RefreshState) release(token string, err error) []*PendingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queue
	s.queue = nil
	s.refreshing = false
	s.generation++
	s.lastErr = err
	if err == nil {
		s.latestToken = token
	} else {
		s.latestToken = ""
	}
	return queue
}

// settle resolves or rejects every pending request outside the lock.
func settle(queue []*PendingRequest, token string, err error) {
	for _, p := range queue {
		if err != nil {
			p.Reject(err)
			continue
		}
		p.Resolve(token)
	}
}
