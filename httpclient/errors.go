// httpclient/errors.go
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/simbuah/go-api-http-client/response"
)

var (
	// ErrAuthExpired is matched by every error that means the session is gone and the
	// user has to sign in again.
	ErrAuthExpired = errors.New("session expired")

	// ErrRefreshTokenMissing is returned when a refresh is needed but no refresh token is stored.
	ErrRefreshTokenMissing = errors.New("refresh token not found")

	// ErrUnsupportedMethod is returned for HTTP methods outside GET/POST/PUT/PATCH/DELETE.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	errRefreshAborted = errors.New("token refresh aborted")
)

// AuthExpiredError reports an authorization failure the client could not recover from,
// either because the refresh failed or because the replayed request was rejected again.
type AuthExpiredError struct {
	Cause error
}

func (e *AuthExpiredError) Error() string {
	if e.Cause == nil {
		return ErrAuthExpired.Error()
	}
	return fmt.Sprintf("%s: %v", ErrAuthExpired, e.Cause)
}

func (e *AuthExpiredError) Unwrap() error {
	return e.Cause
}

// Is reports ErrAuthExpired as a match so callers can use errors.Is.
func (e *AuthExpiredError) Is(target error) bool {
	return target == ErrAuthExpired
}

// NetworkError is a transport-level failure: no HTTP response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline or transport timeout.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsAuthExpired reports whether err means the session has expired.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

// AsHTTPError returns the *response.HTTPError in err's chain, if any.
func AsHTTPError(err error) (*response.HTTPError, bool) {
	var httpErr *response.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
