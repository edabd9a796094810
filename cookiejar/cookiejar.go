// cookiejar/cookiejar.go

/* Package cookiejar provides cookie handling for the HTTP client: initialisation of a
public-suffix aware cookie jar, seeding it with configured cookies, and redaction of
session cookies before they are logged. */
package cookiejar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/simbuah/go-api-http-client/logger"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// sensitiveCookieNames are never logged in clear. Includes the cookie names used by
// JWT cookie transports alongside generic session cookies.
var sensitiveCookieNames = map[string]bool{
	"session":              true,
	"SessionID":            true,
	"access_token_cookie":  true,
	"refresh_token_cookie": true,
	"csrf_access_token":    true,
	"csrf_refresh_token":   true,
}

// SetupCookieJar attaches a cookie jar to client when enabled and seeds it with customCookies
// scoped to baseURL. Custom cookies without an enabled jar are ignored.
func SetupCookieJar(client *http.Client, enableCookieJar bool, baseURL string, customCookies map[string]string, log logger.Logger) error {
	if !enableCookieJar {
		return nil
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		log.Warn("Failed to create cookie jar", zap.Error(err))
		return fmt.Errorf("setupCookieJar failed: %w", err)
	}
	client.Jar = jar

	if len(customCookies) == 0 {
		return nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("setupCookieJar: parsing base URL: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(customCookies))
	for name, value := range customCookies {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	jar.SetCookies(u, cookies)

	log.Debug("Custom cookies applied", zap.Int("count", len(cookies)), zap.String("host", u.Host))
	return nil
}

// RedactSensitiveCookies returns a copy of cookies with sensitive values replaced.
// The input slice and cookies are not modified.
func RedactSensitiveCookies(cookies []*http.Cookie) []*http.Cookie {
	redacted := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		c := *cookie
		if sensitiveCookieNames[c.Name] {
			c.Value = "REDACTED"
		}
		redacted = append(redacted, &c)
	}
	return redacted
}

// CookiesFromHeader converts the Set-Cookie lines of a response header to []*http.Cookie.
func CookiesFromHeader(header http.Header) []*http.Cookie {
	return (&http.Response{Header: header}).Cookies()
}

// LogCookies logs the names and (redacted) values of cookies at debug level.
func LogCookies(direction string, cookies []*http.Cookie, rawURL string, log logger.Logger) {
	if len(cookies) == 0 || log.GetLogLevel() > logger.LogLevelDebug {
		return
	}
	values := make([]string, 0, len(cookies))
	for _, c := range RedactSensitiveCookies(cookies) {
		values = append(values, c.Name+"="+c.Value)
	}
	log.Debug("Cookies", zap.String("direction", direction), zap.String("url", rawURL), zap.Strings("cookies", values))
}
