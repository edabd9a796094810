// httpclient/client.go
/* The `httpclient` package provides the authenticated HTTP client used to talk to the SIM-Buah
warehouse API. Every request carries the stored access token as a bearer credential. When the
server answers 401 the client refreshes the token once, parks every other request that fails
meanwhile, and replays them all with the new token. If the refresh fails the stored session is
purged and a SessionExpiredHandler is told to send the user back to the login route.
The client also handles concurrency limits, redirects, cookies, proxies and structured logging. */
package httpclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/simbuah/go-api-http-client/concurrency"
	"github.com/simbuah/go-api-http-client/cookiejar"
	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/proxy"
	"github.com/simbuah/go-api-http-client/redirecthandler"
	"github.com/simbuah/go-api-http-client/tokenstore"
	"go.uber.org/zap"
)

// Master struct/object
type Client struct {
	// Private
	config         ClientConfig
	http           Executor
	store          tokenstore.Store
	refresh        *RefreshState
	onExpired      SessionExpiredHandler
	redirects      *redirecthandler.RedirectHandler
	customExecutor bool

	// Exported
	Logger      logger.Logger
	Concurrency *concurrency.ConcurrencyHandler
}

// ClientOption customises a Client during BuildClient.
type ClientOption func(*Client)

// WithTokenStore sets where session credentials are read from and written to.
// Defaults to an in-memory store.
func WithTokenStore(store tokenstore.Store) ClientOption {
	return func(c *Client) {
		c.store = store
	}
}

// WithSessionExpiredHandler sets what happens once the session cannot be recovered.
// Defaults to a LoginRedirect that logs the login route.
func WithSessionExpiredHandler(handler SessionExpiredHandler) ClientOption {
	return func(c *Client) {
		c.onExpired = handler
	}
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(log logger.Logger) ClientOption {
	return func(c *Client) {
		c.Logger = log
	}
}

// WithExecutor replaces the transport. Redirect, cookie and proxy settings only apply
// to the default executor.
func WithExecutor(executor Executor) ClientOption {
	return func(c *Client) {
		c.http = executor
		c.customExecutor = true
	}
}

// BuildClient creates a new HTTP client with the provided configuration.
func BuildClient(config ClientConfig, populateDefaultValues bool, opts ...ClientOption) (*Client, error) {

	err := validateClientConfig(&config, populateDefaultValues)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client := &Client{
		config:  config,
		refresh: NewRefreshState(),
	}
	for _, opt := range opts {
		opt(client)
	}

	//region Logging

	if client.Logger == nil {
		parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)
		log, err := logger.BuildLogger(parsedLogLevel, config.LogOutputFormat, config.LogConsoleSeparator, config.LogExportPath)
		if err != nil {
			return nil, fmt.Errorf("building logger: %w", err)
		}
		client.Logger = log
	}
	log := client.Logger

	//endregion

	//////////////////////////////////////////////////////////////////////////////////////////

	//region HTTP

	log.Info("initializing new http client", zap.String("base_url", config.BaseURL))

	if !client.customExecutor {
		httpClient := &http.Client{
			Timeout: config.CustomTimeout.Duration(),
		}

		client.redirects, err = redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, log)
		if err != nil {
			return nil, log.Error("Failed to set up redirect handler", zap.Error(err))
		}

		if err := cookiejar.SetupCookieJar(httpClient, config.CookieJarEnabled, config.BaseURL, config.CustomCookies, log); err != nil {
			return nil, log.Error("Failed to set up cookie jar", zap.Error(err))
		}

		if config.ProxyURL != "" {
			if err := proxy.InitializeProxy(httpClient, config.ProxyURL, config.ProxyUsername, config.ProxyPassword, log); err != nil {
				return nil, log.Error("Failed to set up proxy", zap.Error(err))
			}
		}

		client.http = &ProdExecutor{httpClient}
	}

	//endregion

	//////////////////////////////////////////////////////////////////////////////////////////

	//region Session

	if client.store == nil {
		client.store = tokenstore.NewMemoryStore()
	}

	if client.onExpired == nil {
		client.onExpired = LoginRedirect{
			LoginRoute: config.LoginRoute,
			Navigate: func(_ context.Context, route string) {
				log.Warn("Session expired, sign in again", zap.String("login_route", route))
			},
		}
	}

	//endregion

	//////////////////////////////////////////////////////////////////////////////////////////

	//region Concurrency

	client.Concurrency = concurrency.NewConcurrencyHandler(
		config.MaxConcurrentRequests,
		log,
		&concurrency.ConcurrencyMetrics{},
	)

	//endregion

	//////////////////////////////////////////////////////////////////////////////////////////

	//region LoggingOut

	log.Debug("New API client initialized",
		zap.String("Base URL", config.BaseURL),
		zap.String("Refresh Path", config.RefreshPath),
		zap.String("Login Route", config.LoginRoute),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Bool("Cookie Jar Enabled", config.CookieJarEnabled),
		zap.Int("Max Concurrent Requests", config.MaxConcurrentRequests),
		zap.Bool("Follow Redirects", config.FollowRedirects),
		zap.Int("Max Redirects", config.MaxRedirects),
		zap.Duration("Token Refresh Buffer Period", config.TokenRefreshBufferPeriod.Duration()),
		zap.Duration("Custom Timeout", config.CustomTimeout.Duration()),
		zap.Bool("Custom Executor", client.customExecutor),
	)

	//endregion

	return client, nil
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() ClientConfig {
	return c.config
}

// TokenStore returns the store holding the session credentials.
func (c *Client) TokenStore() tokenstore.Store {
	return c.store
}

// RefreshState exposes the refresh coordination state, mainly for inspection.
func (c *Client) RefreshState() *RefreshState {
	return c.refresh
}

// Metrics returns a snapshot of the request counters.
func (c *Client) Metrics() concurrency.MetricsSnapshot {
	return c.Concurrency.Metrics.Snapshot()
}
