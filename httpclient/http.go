package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Executor sends a single HTTP request. *http.Client satisfies it.
type Executor interface {
	Do(req *http.Request) (*http.Response, error)
}

// Production

type ProdExecutor struct {
	*http.Client
}

// Mocking

// MockResponder answers a request sent through a MockExecutor.
type MockResponder func(req *http.Request) (*http.Response, error)

// RecordedRequest is a request as seen by a MockExecutor.
type RecordedRequest struct {
	Method string
	URL    string
	Path   string
	Header http.Header
	Body   []byte
}

// MockExecutor records every request and answers it with Responder, or with
// LockedResponseCode/ResponseBody when no Responder is set. Safe for concurrent use.
type MockExecutor struct {
	Responder          MockResponder
	LockedResponseCode int
	ResponseBody       string

	mu       sync.Mutex
	requests []RecordedRequest
}

func (m *MockExecutor) Do(req *http.Request) (*http.Response, error) {
	recorded := RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Path:   req.URL.Path,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		recorded.Body = body
	}

	m.mu.Lock()
	m.requests = append(m.requests, recorded)
	m.mu.Unlock()

	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	if m.Responder != nil {
		return m.Responder(req)
	}

	statusString := http.StatusText(m.LockedResponseCode)
	if statusString == "" {
		return nil, fmt.Errorf("unknown response code requested: %d", m.LockedResponseCode)
	}

	return NewMockResponse(m.LockedResponseCode, "application/json", m.ResponseBody), nil
}

// Requests returns a copy of everything sent so far, in send order.
func (m *MockExecutor) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// CountPath returns how many requests were sent to path.
func (m *MockExecutor) CountPath(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.requests {
		if r.Path == path {
			n++
		}
	}
	return n
}

// NewMockResponse builds a response with the given status, content type and body.
func NewMockResponse(statusCode int, contentType, body string) *http.Response {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}
