// httpclient/auth_recovery.go
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/status"
	"github.com/simbuah/go-api-http-client/tokenstore"
	"go.uber.org/zap"
)

var errMissingAccessToken = errors.New("refresh response has no access_token")

// refreshResponse is the body of a successful refresh call. RefreshToken is only set
// when the server rotates it.
type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// execute attaches the stored credential and sends desc, recovering from one 401.
func (c *Client) execute(ctx context.Context, desc *RequestDescriptor) (*Response, error) {
	if desc.Anonymous {
		return c.dispatch(ctx, desc, "", c.refresh.Generation())
	}
	if err := c.refreshIfExpiring(ctx, desc); err != nil {
		return nil, err
	}

	// generation first: a refresh finishing in between makes the 401 look stale, not new
	generation := c.refresh.Generation()
	token := c.accessToken(ctx)

	return c.dispatch(ctx, desc, token, generation)
}

func (c *Client) dispatch(ctx context.Context, desc *RequestDescriptor, token string, generation uint64) (*Response, error) {
	resp, err := c.send(ctx, desc, token)
	if err != nil {
		return nil, err
	}
	if status.IsSuccess(resp.StatusCode) {
		return resp, nil
	}

	httpErr := c.httpError(resp)
	if !status.IsAuthFailure(resp.StatusCode) || desc.Anonymous || c.isRefreshRequest(desc) {
		return nil, httpErr
	}

	if desc.retried {
		c.Logger.Warn("Request rejected again after token refresh",
			zap.String("method", desc.Method),
			zap.String("url", desc.URL),
		)
		return nil, &AuthExpiredError{Cause: httpErr}
	}
	desc.retried = true

	freshToken, err := c.awaitFreshToken(ctx, desc, generation)
	if err != nil {
		return nil, err
	}

	c.Concurrency.Metrics.RecordRetry()
	logger.LogRetryAttempt(c.Logger, desc.Method, desc.URL, "access_token_refreshed")

	return c.dispatch(ctx, desc, freshToken, c.refresh.Generation())
}

// awaitFreshToken returns an access token newer than generation. It runs the refresh when
// none is in flight, otherwise it waits for the running one.
func (c *Client) awaitFreshToken(ctx context.Context, desc *RequestDescriptor, generation uint64) (string, error) {
	resolved := make(chan string, 1)
	rejected := make(chan error, 1)
	pending := &PendingRequest{
		Descriptor: desc,
		Generation: generation,
		Resolve:    func(token string) { resolved <- token },
		Reject:     func(err error) { rejected <- err },
	}

	outcome, token, queueLength, lastErr := c.refresh.acquire(pending)
	switch outcome {
	case refreshExpired:
		c.Logger.Debug("Session already ended by an earlier refresh",
			zap.String("method", desc.Method),
			zap.String("url", desc.URL),
		)
		return "", &AuthExpiredError{Cause: lastErr}
	case refreshStale:
		c.Logger.Debug("Access token already refreshed, replaying with latest token",
			zap.String("method", desc.Method),
			zap.String("url", desc.URL),
		)
		return token, nil
	case refreshOwner:
		return c.runRefresh(ctx)
	}

	logger.LogRequestQueued(c.Logger, desc.Method, desc.URL, queueLength)

	select {
	case token := <-resolved:
		return token, nil
	case err := <-rejected:
		return "", err
	case <-ctx.Done():
		return "", &NetworkError{Method: desc.Method, URL: desc.URL, Err: ctx.Err()}
	}
}

// runRefresh performs the one refresh call of a cycle and settles the queue. The state is
// released on every exit path; a panic rejects the queue before it propagates.
func (c *Client) runRefresh(ctx context.Context) (string, error) {
	start := time.Now()
	detached := context.WithoutCancel(ctx)

	released := false
	defer func() {
		if released {
			return
		}
		queue := c.refresh.release("", errRefreshAborted)
		c.Concurrency.Metrics.RecordRefresh(errRefreshAborted)
		logger.LogTokenRefresh(c.Logger, len(queue), time.Since(start), errRefreshAborted)
		settle(queue, "", &AuthExpiredError{Cause: errRefreshAborted})
	}()

	token, err := c.refreshAccessToken(detached)
	if err != nil {
		c.purgeSession(detached)
	}

	queue := c.refresh.release(token, err)
	released = true

	c.Concurrency.Metrics.RecordRefresh(err)
	logger.LogTokenRefresh(c.Logger, len(queue), time.Since(start), err)

	if err != nil {
		expired := &AuthExpiredError{Cause: err}
		settle(queue, "", expired)
		c.onExpired.SessionExpired(detached, err)
		return "", expired
	}

	settle(queue, token, nil)
	return token, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access token and stores it.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	refreshToken, err := c.store.Get(ctx, tokenstore.RefreshTokenKey)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		return "", ErrRefreshTokenMissing
	}

	rawURL, err := c.resolveURL(c.config.RefreshPath, nil)
	if err != nil {
		return "", err
	}
	desc := &RequestDescriptor{
		Method:    http.MethodPost,
		URL:       rawURL,
		Body:      []byte("{}"),
		isRefresh: true,
	}

	if timeout := c.config.CustomTimeout.Duration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := c.send(ctx, desc, refreshToken)
	if err != nil {
		return "", err
	}
	if !status.IsSuccess(resp.StatusCode) {
		return "", c.httpError(resp)
	}

	var payload refreshResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errMissingAccessToken
	}

	if err := tokenstore.SaveSession(ctx, c.store, payload.AccessToken, payload.RefreshToken); err != nil {
		return "", err
	}
	return payload.AccessToken, nil
}

// refreshIfExpiring runs the coalesced refresh before sending when the stored access token
// expires within TokenRefreshBufferPeriod.
func (c *Client) refreshIfExpiring(ctx context.Context, desc *RequestDescriptor) error {
	buffer := c.config.TokenRefreshBufferPeriod.Duration()
	if buffer <= 0 || c.isRefreshRequest(desc) {
		return nil
	}

	generation := c.refresh.Generation()
	token := c.accessToken(ctx)
	if token == "" || !tokenExpiresWithin(token, buffer, time.Now()) {
		return nil
	}

	c.Logger.Debug("Access token expires within buffer period, refreshing",
		zap.Duration("buffer", buffer),
		zap.String("url", desc.URL),
	)
	_, err := c.awaitFreshToken(ctx, desc, generation)
	return err
}

// accessToken reads the stored access token. A failing store is logged and treated as
// no token, so the request goes out unauthenticated.
func (c *Client) accessToken(ctx context.Context) string {
	token, err := c.store.Get(ctx, tokenstore.AccessTokenKey)
	if err != nil {
		c.Logger.Warn("Failed to read access token, sending request unauthenticated", zap.Error(err))
		return ""
	}
	return token
}

func (c *Client) purgeSession(ctx context.Context) {
	if err := tokenstore.Purge(ctx, c.store); err != nil {
		c.Logger.Warn("Failed to purge session tokens", zap.Error(err))
	}
}

// isRefreshRequest reports whether desc targets the refresh endpoint.
func (c *Client) isRefreshRequest(desc *RequestDescriptor) bool {
	return desc.isRefresh || c.pathOf(desc.URL) == c.config.RefreshPath
}
