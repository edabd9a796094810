package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHandleAPIErrorResponse tests the handling of various API error responses.
func TestHandleAPIErrorResponse(t *testing.T) {
	tests := []struct {
		name            string
		responseStatus  int
		contentType     string
		responseBody    string
		expectedMessage string
		expectedDetails []string
	}{
		{
			name:            "msg field",
			responseStatus:  http.StatusBadRequest,
			contentType:     "application/json",
			responseBody:    `{"msg": "Stok tidak mencukupi"}`,
			expectedMessage: "Stok tidak mencukupi",
		},
		{
			name:            "message field",
			responseStatus:  http.StatusInternalServerError,
			contentType:     "application/json; charset=utf-8",
			responseBody:    `{"message": "Internal Server Error", "details": ["Server crashed"]}`,
			expectedMessage: "Internal Server Error",
			expectedDetails: []string{"Server crashed"},
		},
		{
			name:            "error string",
			responseStatus:  http.StatusNotFound,
			contentType:     "application/json",
			responseBody:    `{"error": "Data tidak ditemukan"}`,
			expectedMessage: "Data tidak ditemukan",
		},
		{
			name:            "nested error object",
			responseStatus:  http.StatusBadRequest,
			contentType:     "application/json",
			responseBody:    `{"error": {"code": "400", "message": "Bad Request"}, "errors": [{"field": "nama_buah", "description": "required"}]}`,
			expectedMessage: "Bad Request",
			expectedDetails: []string{"nama_buah: required"},
		},
		{
			name:            "malformed JSON falls back to raw text",
			responseStatus:  http.StatusBadGateway,
			contentType:     "application/json",
			responseBody:    `upstream failed`,
			expectedMessage: "upstream failed",
		},
		{
			name:            "xml",
			responseStatus:  http.StatusConflict,
			contentType:     "application/xml",
			responseBody:    `<error><code>409</code><message>Duplicate</message></error>`,
			expectedMessage: "409; Duplicate",
		},
		{
			name:            "html paragraphs",
			responseStatus:  http.StatusServiceUnavailable,
			contentType:     "text/html",
			responseBody:    `<html><body><h1>Down</h1><p>Service Unavailable</p></body></html>`,
			expectedMessage: "Service Unavailable",
		},
		{
			name:            "html without paragraphs uses status text",
			responseStatus:  http.StatusServiceUnavailable,
			contentType:     "text/html",
			responseBody:    `<html><body>Service Unavailable</body></html>`,
			expectedMessage: http.StatusText(http.StatusServiceUnavailable),
		},
		{
			name:            "plain text",
			responseStatus:  http.StatusForbidden,
			contentType:     "text/plain",
			responseBody:    "Akses ditolak\n",
			expectedMessage: "Akses ditolak",
		},
		{
			name:            "empty body",
			responseStatus:  http.StatusUnauthorized,
			expectedMessage: http.StatusText(http.StatusUnauthorized),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responseRecorder := httptest.NewRecorder()
			if tt.contentType != "" {
				responseRecorder.Header().Set("Content-Type", tt.contentType)
			}
			responseRecorder.WriteHeader(tt.responseStatus)
			responseRecorder.WriteString(tt.responseBody)

			dummyReq := httptest.NewRequest(http.MethodGet, "http://example.com/api/master/buah", nil)
			response := responseRecorder.Result()
			response.Request = dummyReq

			result := HandleAPIErrorResponse(response, logger.NewNopLogger())

			require.NotNil(t, result)
			assert.Equal(t, tt.responseStatus, result.StatusCode)
			assert.Equal(t, http.MethodGet, result.Method)
			assert.Equal(t, "http://example.com/api/master/buah", result.URL)
			assert.Equal(t, tt.responseBody, result.RawBody())
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, tt.expectedDetails, result.Details)
		})
	}
}

func TestHTTPErrorError(t *testing.T) {
	err := &HTTPError{StatusCode: http.StatusNotFound, Method: http.MethodGet, URL: "http://x/api/a", Message: "missing"}
	assert.Equal(t, "API Error: GET http://x/api/a: StatusCode=404, Message=missing", err.Error())

	bare := &HTTPError{StatusCode: http.StatusTeapot}
	assert.Equal(t, "API Error: StatusCode=418, Message=I'm a teapot", bare.Error())
}
