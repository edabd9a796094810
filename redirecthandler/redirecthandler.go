// Package redirecthandler implements the client's redirect policy. Credentials are never
// forwarded to a host other than the one the request was originally sent to.
package redirecthandler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/status"
	"go.uber.org/zap"
)

// RedirectHandler contains configurations for handling HTTP redirects.
type RedirectHandler struct {
	Logger             logger.Logger     // Logger instance for logging.
	MaxRedirects       int               // Maximum allowed redirects to prevent infinite loops.
	SensitiveHeaders   []string          // Headers to be removed on cross-host redirects.
	PermanentRedirects map[string]string // Cache for permanent redirects
	PermRedirectsMutex sync.RWMutex      // Mutex for safe concurrent access to PermanentRedirects
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	return &RedirectHandler{
		Logger:             log,
		MaxRedirects:       maxRedirects,
		SensitiveHeaders:   []string{"Authorization", "Cookie", "Proxy-Authorization"},
		PermanentRedirects: make(map[string]string),
	}
}

// AddSensitiveHeader allows adding configurable sensitive headers.
func (r *RedirectHandler) AddSensitiveHeader(header string) {
	r.SensitiveHeaders = append(r.SensitiveHeaders, header)
}

// WithRedirectHandling applies the redirect handling policy to an http.Client.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect implements the redirect handling logic. req is the request about to be
// sent to the redirect target; via holds the requests already made, oldest first.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) == 0 {
		return nil
	}

	// 307/308 keep the method and body; replaying a non-idempotent write elsewhere is refused
	if req.Method == http.MethodPost || req.Method == http.MethodPatch {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", req.Method), zap.String("url", req.URL.String()))
		return http.ErrUseLastResponse
	}

	if len(via) > r.MaxRedirects {
		r.Logger.Warn("Maximum redirects reached", zap.Int("max_redirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	if hasLoop(req.URL, via) {
		r.Logger.Warn("Redirect loop detected", zap.String("url", req.URL.String()))
		return &RedirectLoopError{URL: req.URL.String()}
	}

	previous := via[len(via)-1]
	if !sameHost(via[0].URL, req.URL) {
		r.secureRequest(req)
	}

	// req.Response is the redirect that produced req
	if req.Response != nil {
		if status.IsPermanentRedirect(req.Response.StatusCode) {
			r.cachePermanentRedirect(previous.URL.String(), req.URL.String())
		}
		if req.Response.StatusCode == http.StatusSeeOther {
			r.adjustForSeeOther(req)
		}
	}

	r.Logger.Info("Redirecting request",
		zap.String("original_url", previous.URL.String()),
		zap.String("new_url", req.URL.String()),
		zap.Int("redirect_count", len(via)),
	)
	return nil
}

// secureRequest removes sensitive headers from a request leaving the original host.
func (r *RedirectHandler) secureRequest(req *http.Request) {
	for _, header := range r.SensitiveHeaders {
		if req.Header.Get(header) != "" {
			req.Header.Del(header)
			r.Logger.Debug("Removed sensitive header on cross-host redirect", zap.String("header", header))
		}
	}
}

// adjustForSeeOther adjusts the request for "303 See Other" responses.
func (r *RedirectHandler) adjustForSeeOther(req *http.Request) {
	req.Method = http.MethodGet
	req.Body = nil
	req.GetBody = nil
	req.ContentLength = 0
	req.Header.Del("Content-Type")
}

// RedirectLoopError represents an error when a redirect loop is detected.
type RedirectLoopError struct {
	URL string
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError represents an error when the maximum number of redirects is reached.
type MaxRedirectsError struct {
	MaxRedirects int
}

func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}

// cachePermanentRedirect caches the permanent redirect location.
func (r *RedirectHandler) cachePermanentRedirect(originalURL, redirectURL string) {
	r.PermRedirectsMutex.Lock()
	defer r.PermRedirectsMutex.Unlock()

	r.PermanentRedirects[originalURL] = redirectURL
}

// ResolvePermanentRedirect returns the cached permanent target for rawURL, or rawURL itself.
// Only safe (GET/HEAD) requests should be rewritten with it.
func (r *RedirectHandler) ResolvePermanentRedirect(rawURL string) string {
	r.PermRedirectsMutex.RLock()
	defer r.PermRedirectsMutex.RUnlock()

	if target, ok := r.PermanentRedirects[rawURL]; ok {
		return target
	}
	return rawURL
}

// hasLoop reports whether target was already visited in this redirect chain.
func hasLoop(target *url.URL, via []*http.Request) bool {
	for _, prev := range via {
		if prev.URL != nil && prev.URL.String() == target.String() {
			return true
		}
	}
	return false
}

func sameHost(a, b *url.URL) bool {
	return strings.EqualFold(a.Host, b.Host)
}

// SetupRedirectHandler configures the HTTP client for redirect handling based on the client configuration.
// When redirects are disabled the client returns the redirect response itself.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log logger.Logger) (*RedirectHandler, error) {
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil, nil
	}
	if maxRedirects < 1 {
		return nil, log.Error("Invalid maxRedirects value", zap.Int("max_redirects", maxRedirects))
	}

	redirectHandler := NewRedirectHandler(log, maxRedirects)
	redirectHandler.WithRedirectHandling(client)
	log.Debug("Redirect handling enabled", zap.Int("max_redirects", maxRedirects))
	return redirectHandler, nil
}
