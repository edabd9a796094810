// httpclient/helpers_test.go
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/tokenstore"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://api.test/api"

// fakeAPI plays the SIM-Buah backend: it accepts exactly one access token at a time and
// mints mintToken on refresh.
type fakeAPI struct {
	mu           sync.Mutex
	validToken   string
	refreshToken string
	mintToken    string
	rotateTo     string // refresh_token returned on refresh, if set
	refreshFail  int    // status returned by refresh, 0 means succeed
	refreshBody  string // overrides the refresh success body
	refreshErr   error  // transport error on refresh
	refreshPanic bool
	alwaysReject map[string]bool
	holds        map[string]chan struct{}

	refreshGate  chan struct{}
	refreshCalls atomic.Int32
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		refreshToken: "refresh-1",
		mintToken:    "new123",
		alwaysReject: map[string]bool{},
		holds:        map[string]chan struct{}{},
	}
}

func (f *fakeAPI) respond(req *http.Request) (*http.Response, error) {
	path := strings.TrimPrefix(req.URL.Path, "/api")

	if path == DefaultRefreshPath {
		f.refreshCalls.Add(1)
		if f.refreshGate != nil {
			<-f.refreshGate
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case f.refreshPanic:
			panic("refresh transport exploded")
		case f.refreshErr != nil:
			return nil, f.refreshErr
		case f.refreshFail != 0:
			return NewMockResponse(f.refreshFail, "application/json", `{"msg":"Token has expired"}`), nil
		case req.Header.Get("Authorization") != "Bearer "+f.refreshToken:
			return NewMockResponse(http.StatusUnauthorized, "application/json", `{"msg":"bad refresh token"}`), nil
		case f.refreshBody != "":
			return NewMockResponse(http.StatusOK, "application/json", f.refreshBody), nil
		}

		f.validToken = f.mintToken
		body := fmt.Sprintf(`{"access_token":%q}`, f.mintToken)
		if f.rotateTo != "" {
			f.refreshToken = f.rotateTo
			body = fmt.Sprintf(`{"access_token":%q,"refresh_token":%q}`, f.mintToken, f.rotateTo)
		}
		return NewMockResponse(http.StatusOK, "application/json", body), nil
	}

	f.mu.Lock()
	hold := f.holds[path]
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}

	f.mu.Lock()
	valid := f.validToken
	reject := f.alwaysReject[path]
	f.mu.Unlock()

	if reject || valid == "" || req.Header.Get("Authorization") != "Bearer "+valid {
		return NewMockResponse(http.StatusUnauthorized, "application/json", `{"msg":"Token has expired"}`), nil
	}
	return NewMockResponse(http.StatusOK, "application/json", fmt.Sprintf(`{"path":%q}`, path)), nil
}

func (f *fakeAPI) setValidToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validToken = token
}

// expiryRecorder counts session-expired notifications.
type expiryRecorder struct {
	mu     sync.Mutex
	causes []error
}

func (r *expiryRecorder) SessionExpired(_ context.Context, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.causes = append(r.causes, cause)
}

func (r *expiryRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.causes)
}

type testClient struct {
	*Client
	exec    *MockExecutor
	store   *tokenstore.MemoryStore
	expired *expiryRecorder
}

func newTestClient(t *testing.T, config ClientConfig, responder MockResponder, opts ...ClientOption) *testClient {
	t.Helper()

	if config.BaseURL == "" {
		config.BaseURL = testBaseURL
	}
	tc := &testClient{
		exec:    &MockExecutor{Responder: responder},
		store:   tokenstore.NewMemoryStore(),
		expired: &expiryRecorder{},
	}
	base := []ClientOption{
		WithExecutor(tc.exec),
		WithTokenStore(tc.store),
		WithLogger(logger.NewNopLogger()),
		WithSessionExpiredHandler(tc.expired),
	}

	client, err := BuildClient(config, true, append(base, opts...)...)
	require.NoError(t, err)
	tc.Client = client
	return tc
}

func (tc *testClient) seedSession(t *testing.T, access, refresh string) {
	t.Helper()
	require.NoError(t, tokenstore.SaveSession(context.Background(), tc.store, access, refresh))
}

func (tc *testClient) stored(t *testing.T, key string) string {
	t.Helper()
	value, err := tc.store.Get(context.Background(), key)
	require.NoError(t, err)
	return value
}

func (tc *testClient) requireIdle(t *testing.T) {
	t.Helper()
	require.False(t, tc.RefreshState().InProgress(), "refresh flag still set")
	require.Zero(t, tc.RefreshState().Pending(), "refresh queue not drained")
}

var errTransport = errors.New("connection refused")
