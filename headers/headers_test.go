// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetAuthorization(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"raw token", "test-token", "Bearer test-token"},
		{"already prefixed", "Bearer test-token", "Bearer test-token"},
		{"empty token removes header", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			req.Header.Set("Authorization", "Bearer stale")

			NewHeaderHandler(req, mocklogger.NewMockLogger()).SetAuthorization(tt.token)

			assert.Equal(t, tt.expected, req.Header.Get("Authorization"), "Authorization header should be correctly set")
		})
	}
}

func TestSetContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	contentType := "application/json"
	headerHandler := NewHeaderHandler(req, mocklogger.NewMockLogger())
	headerHandler.SetContentType(contentType)

	assert.Equal(t, contentType, req.Header.Get("Content-Type"), "Content-Type header should be correctly set")
}

func TestSetCustomHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	h := NewHeaderHandler(req, mocklogger.NewMockLogger())
	h.SetContentType("application/json")

	h.SetCustomHeaders(http.Header{"Content-Type": {"multipart/form-data"}, "X-Trace": {"1"}})

	assert.Equal(t, "multipart/form-data", req.Header.Get("Content-Type"))
	assert.Equal(t, "1", req.Header.Get("X-Trace"))
}

// TestLogHeaders verifies the bearer token never reaches the log when redaction is on.
func TestLogHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer secret")
	mockLog := mocklogger.NewMockLogger()
	mockLog.SetLevel(logger.LogLevelDebug)
	mockLog.On("Debug", "HTTP Request Headers", mock.MatchedBy(func(fields []zap.Field) bool {
		for _, f := range fields {
			if f.Key == "headers" {
				return f.String == "Authorization: REDACTED"
			}
		}
		return false
	})).Once()

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertExpectations(t)
}

func TestLogHeadersSkippedAboveDebug(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	mockLog := mocklogger.NewMockLogger()
	mockLog.SetLevel(logger.LogLevelInfo)

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertNotCalled(t, "Debug", mock.Anything, mock.Anything)
}

func TestHeadersToString(t *testing.T) {
	h := http.Header{"X-B": {"2"}, "X-A": {"1", "3"}}

	assert.Equal(t, "X-A: 1, 3\nX-B: 2", HeadersToString(h))
}

func TestCheckDeprecationHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/old", nil)
	resp := &http.Response{Header: http.Header{"Deprecation": {"Sun, 01 Jun 2025 00:00:00 GMT"}}, Request: req}
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("Warn", "API endpoint is deprecated", mock.Anything).Once()

	CheckDeprecationHeader(resp, mockLog)
	CheckDeprecationHeader(&http.Response{Header: http.Header{}}, mockLog)

	mockLog.AssertExpectations(t)
	require.Len(t, mockLog.Calls, 1)
}
