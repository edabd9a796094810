// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/simbuah/go-api-http-client/headers/redact"
	"github.com/simbuah/go-api-http-client/logger"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// HeaderHandler is responsible for managing and setting headers on HTTP requests.
type HeaderHandler struct {
	req *http.Request // The http.Request for which headers are being managed
	log logger.Logger // The logger to use for logging headers
}

// NewHeaderHandler creates a new instance of HeaderHandler for a given http.Request and logger.
func NewHeaderHandler(req *http.Request, log logger.Logger) *HeaderHandler {
	return &HeaderHandler{
		req: req,
		log: log,
	}
}

// SetAuthorization sets the Authorization header for the request. An empty token removes
// the header so the request goes out unauthenticated.
func (h *HeaderHandler) SetAuthorization(token string) {
	if token == "" {
		h.req.Header.Del("Authorization")
		return
	}
	// Ensure the token is prefixed with "Bearer " only once
	if !strings.HasPrefix(token, bearerPrefix) {
		token = bearerPrefix + token
	}
	h.req.Header.Set("Authorization", token)
}

// SetContentType sets the Content-Type header for the request.
func (h *HeaderHandler) SetContentType(contentType string) {
	h.req.Header.Set("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func (h *HeaderHandler) SetUserAgent(userAgent string) {
	h.req.Header.Set("User-Agent", userAgent)
}

// SetCustomHeaders copies caller-supplied headers onto the request, overriding defaults.
func (h *HeaderHandler) SetCustomHeaders(custom http.Header) {
	for name, values := range custom {
		h.req.Header.Del(name)
		for _, v := range values {
			h.req.Header.Add(name, v)
		}
	}
}

// LogHeaders prints all the current headers in the http.Request using the zap logger.
// Sensitive values are redacted when hideSensitiveData is set.
func (h *HeaderHandler) LogHeaders(hideSensitiveData bool) {
	if h.log.GetLogLevel() > logger.LogLevelDebug {
		return
	}
	redactedHeaders := http.Header{}
	for name, values := range h.req.Header {
		for _, v := range values {
			redactedHeaders.Add(name, redact.RedactSensitiveHeaderData(hideSensitiveData, name, v))
		}
	}

	h.log.Debug("HTTP Request Headers",
		zap.String("method", h.req.Method),
		zap.String("url", h.req.URL.String()),
		zap.String("headers", HeadersToString(redactedHeaders)),
	)
}

// HeadersToString converts a http.Header to a string for logging,
// one header per line, sorted by name.
func HeadersToString(headers http.Header) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	headerStrings := make([]string, 0, len(names))
	for _, name := range names {
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, strings.Join(headers[name], ", ")))
	}
	return strings.Join(headerStrings, "\n")
}

// CheckDeprecationHeader checks the response headers for the Deprecation header and logs a warning if present.
func CheckDeprecationHeader(resp *http.Response, log logger.Logger) {
	deprecationHeader := resp.Header.Get("Deprecation")
	if deprecationHeader == "" {
		return
	}
	endpoint := ""
	if resp.Request != nil {
		endpoint = resp.Request.URL.String()
	}
	log.Warn("API endpoint is deprecated",
		zap.String("date", deprecationHeader),
		zap.String("endpoint", endpoint),
	)
}
