package redirecthandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRequest(t *testing.T, method, rawURL string, resp *http.Response) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, nil)
	require.NoError(t, err)
	req.Response = resp
	return req
}

// TestRedirectHandler_CheckRedirect covers method restrictions, limits, loops, 303 handling
// and cross-host credential stripping.
func TestRedirectHandler_CheckRedirect(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		target       string
		status       int
		via          func(t *testing.T) []*http.Request
		expectedErr  any
		expectAuth   bool
		expectMethod string
	}{
		{
			name:   "same host keeps authorization",
			method: http.MethodGet,
			target: "http://api.example.com/api/new",
			status: http.StatusFound,
			via: func(t *testing.T) []*http.Request {
				return []*http.Request{mustRequest(t, http.MethodGet, "http://api.example.com/api/old", &http.Response{StatusCode: http.StatusFound})}
			},
			expectAuth:   true,
			expectMethod: http.MethodGet,
		},
		{
			name:   "cross host strips authorization",
			method: http.MethodGet,
			target: "http://cdn.other.com/file",
			status: http.StatusFound,
			via: func(t *testing.T) []*http.Request {
				return []*http.Request{mustRequest(t, http.MethodGet, "http://api.example.com/api/export", &http.Response{StatusCode: http.StatusFound})}
			},
			expectMethod: http.MethodGet,
		},
		{
			name:   "post is not replayed",
			method: http.MethodPost,
			target: "http://api.example.com/api/new",
			status: http.StatusTemporaryRedirect,
			via: func(t *testing.T) []*http.Request {
				return []*http.Request{mustRequest(t, http.MethodPost, "http://api.example.com/api/old", &http.Response{StatusCode: http.StatusTemporaryRedirect})}
			},
			expectedErr: http.ErrUseLastResponse,
			expectAuth:  true,
		},
		{
			name:   "see other switches to get",
			method: http.MethodPut,
			target: "http://api.example.com/api/result",
			status: http.StatusSeeOther,
			via: func(t *testing.T) []*http.Request {
				return []*http.Request{mustRequest(t, http.MethodPut, "http://api.example.com/api/job", &http.Response{StatusCode: http.StatusSeeOther})}
			},
			expectAuth:   true,
			expectMethod: http.MethodGet,
		},
		{
			name:   "loop detected",
			method: http.MethodGet,
			target: "http://api.example.com/a",
			status: http.StatusFound,
			via: func(t *testing.T) []*http.Request {
				return []*http.Request{
					mustRequest(t, http.MethodGet, "http://api.example.com/a", &http.Response{StatusCode: http.StatusFound}),
					mustRequest(t, http.MethodGet, "http://api.example.com/b", &http.Response{StatusCode: http.StatusFound}),
				}
			},
			expectedErr: &RedirectLoopError{},
			expectAuth:  true,
		},
		{
			name:   "maximum redirects",
			method: http.MethodGet,
			target: "http://api.example.com/d",
			via: func(t *testing.T) []*http.Request {
				return []*http.Request{
					mustRequest(t, http.MethodGet, "http://api.example.com/a", nil),
					mustRequest(t, http.MethodGet, "http://api.example.com/b", nil),
					mustRequest(t, http.MethodGet, "http://api.example.com/c", nil),
				}
			},
			expectedErr: &MaxRedirectsError{},
			expectAuth:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewRedirectHandler(logger.NewNopLogger(), 2)
			var resp *http.Response
			if tc.status != 0 {
				resp = &http.Response{StatusCode: tc.status}
			}
			req := mustRequest(t, tc.method, tc.target, resp)
			req.Header.Set("Authorization", "Bearer abc")

			err := handler.checkRedirect(req, tc.via(t))

			switch expected := tc.expectedErr.(type) {
			case nil:
				assert.NoError(t, err)
			case error:
				if expected == http.ErrUseLastResponse {
					assert.Equal(t, http.ErrUseLastResponse, err)
				} else {
					assert.IsType(t, expected, err)
				}
			}
			assert.Equal(t, tc.expectAuth, req.Header.Get("Authorization") != "")
			if tc.expectMethod != "" {
				assert.Equal(t, tc.expectMethod, req.Method)
			}
		})
	}
}

// TestRedirectHandler_SecureRequest verifies that sensitive headers are removed and logged.
func TestRedirectHandler_SecureRequest(t *testing.T) {
	mockLogger := mocklogger.NewPermissiveMockLogger()
	redirectHandler := NewRedirectHandler(mockLogger, 5)
	req := &http.Request{Header: http.Header{"Authorization": []string{"token"}, "Cookie": []string{"session"}}}

	redirectHandler.secureRequest(req)

	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Cookie"))
	assert.Len(t, mockLogger.Messages("Debug"), 2)
	assert.Contains(t, mockLogger.Messages("Debug")[0], "Removed sensitive header")
}

func TestPermanentRedirectCache(t *testing.T) {
	handler := NewRedirectHandler(logger.NewNopLogger(), 5)
	req := mustRequest(t, http.MethodGet, "http://example.com/api/v2/buah", &http.Response{StatusCode: http.StatusMovedPermanently})
	via := []*http.Request{mustRequest(t, http.MethodGet, "http://example.com/api/buah", nil)}

	require.NoError(t, handler.checkRedirect(req, via))

	assert.Equal(t, "http://example.com/api/v2/buah", handler.ResolvePermanentRedirect("http://example.com/api/buah"))
	assert.Equal(t, "http://example.com/other", handler.ResolvePermanentRedirect("http://example.com/other"))
}

// TestSetupRedirectHandler exercises the policy end to end against a real server.
func TestSetupRedirectHandler(t *testing.T) {
	var gotAuth string
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/landing", http.StatusFound)
	}))
	defer origin.Close()

	t.Run("follow", func(t *testing.T) {
		client := &http.Client{}
		handler, err := SetupRedirectHandler(client, true, 3, logger.NewNopLogger())
		require.NoError(t, err)
		require.NotNil(t, handler)

		req, _ := http.NewRequest(http.MethodGet, origin.URL, nil)
		req.Header.Set("Authorization", "Bearer abc")
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, gotAuth, "token must not leak to another host")
	})

	t.Run("disabled", func(t *testing.T) {
		client := &http.Client{}
		handler, err := SetupRedirectHandler(client, false, 0, logger.NewNopLogger())
		require.NoError(t, err)
		assert.Nil(t, handler)

		resp, err := client.Get(origin.URL)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("invalid max", func(t *testing.T) {
		_, err := SetupRedirectHandler(&http.Client{}, true, 0, logger.NewNopLogger())
		assert.Error(t, err)
	})
}
