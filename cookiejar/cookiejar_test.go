// cookiejar/cookiejar_test.go
package cookiejar

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRedactSensitiveCookies tests the RedactSensitiveCookies function to ensure it correctly redacts sensitive cookies.
func TestRedactSensitiveCookies(t *testing.T) {
	cookies := []*http.Cookie{
		{Name: "SessionID", Value: "sensitive-value-1"},
		{Name: "NonSensitiveCookie", Value: "non-sensitive-value"},
		{Name: "refresh_token_cookie", Value: "sensitive-value-2"},
	}

	redactedCookies := RedactSensitiveCookies(cookies)

	expectedValues := map[string]string{
		"SessionID":            "REDACTED",
		"NonSensitiveCookie":   "non-sensitive-value",
		"refresh_token_cookie": "REDACTED",
	}

	for _, cookie := range redactedCookies {
		assert.Equal(t, expectedValues[cookie.Name], cookie.Value, "Cookie value should match expected redaction outcome")
	}
	assert.Equal(t, "sensitive-value-1", cookies[0].Value, "input cookies are left untouched")
}

// TestCookiesFromHeader tests the CookiesFromHeader function to ensure it can correctly parse cookies from HTTP headers.
func TestCookiesFromHeader(t *testing.T) {
	header := http.Header{
		"Set-Cookie": []string{
			"SessionID=sensitive-value; Path=/; HttpOnly",
			"NonSensitiveCookie=non-sensitive-value; Path=/",
		},
	}

	cookies := CookiesFromHeader(header)

	require.Len(t, cookies, 2)
	assert.Equal(t, "SessionID", cookies[0].Name)
	assert.Equal(t, "sensitive-value", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "NonSensitiveCookie", cookies[1].Name)
}

func TestSetupCookieJar(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupCookieJar(client, false, "http://localhost:5000/api", map[string]string{"a": "b"}, logger.NewNopLogger()))
		assert.Nil(t, client.Jar)
	})

	t.Run("enabled with custom cookies", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupCookieJar(client, true, "http://localhost:5000/api", map[string]string{"locale": "id"}, logger.NewNopLogger()))
		require.NotNil(t, client.Jar)

		u, _ := url.Parse("http://localhost:5000/api/dashboard")
		cookies := client.Jar.Cookies(u)
		require.Len(t, cookies, 1)
		assert.Equal(t, "locale", cookies[0].Name)
		assert.Equal(t, "id", cookies[0].Value)
	})

	t.Run("bad base url", func(t *testing.T) {
		err := SetupCookieJar(&http.Client{}, true, "://bad", map[string]string{"a": "b"}, logger.NewNopLogger())
		assert.Error(t, err)
	})
}

func TestLogCookiesRedacts(t *testing.T) {
	mockLog := mocklogger.NewPermissiveMockLogger()
	mockLog.SetLevel(logger.LogLevelDebug)

	LogCookies("response", []*http.Cookie{{Name: "session", Value: "secret"}}, "http://x", mockLog)

	require.Len(t, mockLog.Calls, 1)
	assert.Equal(t, []string{"Cookies"}, mockLog.Messages("Debug"))
}
