// httpclient/config.go
// Description: This file contains the client configuration, its defaults, validation and loaders
// for JSON/YAML files and environment variables.
package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL                  = "http://localhost:5000/api"
	DefaultRefreshPath              = "/auth/refresh"
	DefaultLoginRoute               = "/login"
	DefaultLogLevelString           = "LogLevelInfo"
	DefaultLogOutputFormatString    = "pretty"
	DefaultLogConsoleSeparator      = "	"
	DefaultMaxConcurrentRequests    = 10
	DefaultCustomTimeout            = Duration(10 * time.Second)
	DefaultTokenRefreshBufferPeriod = Duration(0)
	DefaultMaxRedirects             = 5
	DefaultContentType              = "application/json"

	envPrefix = "SIMBUAH_"
)

var (
	validLogLevels = []string{
		"LogLevelDebug",
		"LogLevelInfo",
		"LogLevelWarn",
		"LogLevelError",
		"LogLevelPanic",
		"LogLevelFatal",
	}
	validLogFormats = []string{
		"json",
		"pretty",
	}
	configFileExtensions = []string{".json", ".yaml", ".yml"}
)

// Options/Variables for Client
type ClientConfig struct {
	// API
	BaseURL     string `json:"base_url" yaml:"base_url"`
	RefreshPath string `json:"refresh_path" yaml:"refresh_path"` // Path of the token refresh endpoint, relative to BaseURL
	LoginRoute  string `json:"login_route" yaml:"login_route"`   // Where LoginRedirect sends the user once the session is gone

	// Log
	LogLevel            string `json:"log_level" yaml:"log_level"`
	LogOutputFormat     string `json:"log_output_format" yaml:"log_output_format"` // "json" or "pretty"
	LogConsoleSeparator string `json:"log_console_separator" yaml:"log_console_separator"`
	LogExportPath       string `json:"log_export_path" yaml:"log_export_path"` // Empty disables file export
	HideSensitiveData   bool   `json:"hide_sensitive_data" yaml:"hide_sensitive_data"`

	// Cookies
	CookieJarEnabled bool              `json:"cookie_jar_enabled" yaml:"cookie_jar_enabled"`
	CustomCookies    map[string]string `json:"custom_cookies" yaml:"custom_cookies"`

	// Misc
	MaxConcurrentRequests    int      `json:"max_concurrent_requests" yaml:"max_concurrent_requests"`
	CustomTimeout            Duration `json:"custom_timeout" yaml:"custom_timeout"`
	TokenRefreshBufferPeriod Duration `json:"token_refresh_buffer_period" yaml:"token_refresh_buffer_period"`
	FollowRedirects          bool     `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects             int      `json:"max_redirects" yaml:"max_redirects"`

	// Proxy
	ProxyURL      string `json:"proxy_url" yaml:"proxy_url"`
	ProxyUsername string `json:"proxy_username" yaml:"proxy_username"`
	ProxyPassword string `json:"proxy_password" yaml:"proxy_password"`
}

// Duration is a time.Duration that reads as "30s" style strings from JSON and YAML.
// Bare JSON numbers are taken as nanoseconds.
type Duration time.Duration

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadConfigFromFile loads configuration values from a JSON or YAML file into a ClientConfig.
// The format is picked from the file extension. Defaults are applied to anything the file
// leaves unset and the result is validated.
func LoadConfigFromFile(path string) (*ClientConfig, error) {
	path, err := validateFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to clean/validate filepath (%s): %w", path, err)
	}

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the configuration file: %s, error: %w", path, err)
	}

	var config ClientConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(fileBytes, &config)
	default:
		err = json.Unmarshal(fileBytes, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal the configuration file: %s, error: %w", path, err)
	}

	if err := validateClientConfig(&config, true); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigFromEnv builds a ClientConfig from SIMBUAH_* environment variables. The given
// env files (or ./.env when none are given and it exists) are loaded first with godotenv;
// variables already present in the process environment win over file values.
func LoadConfigFromEnv(envFiles ...string) (*ClientConfig, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("loading env files: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	config := &ClientConfig{}

	// API
	config.BaseURL = getEnvOrDefault("BASE_URL", DefaultBaseURL)
	config.RefreshPath = getEnvOrDefault("REFRESH_PATH", DefaultRefreshPath)
	config.LoginRoute = getEnvOrDefault("LOGIN_ROUTE", DefaultLoginRoute)

	// Log
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", DefaultLogLevelString)
	config.LogOutputFormat = getEnvOrDefault("LOG_OUTPUT_FORMAT", DefaultLogOutputFormatString)
	config.LogConsoleSeparator = getEnvOrDefault("LOG_CONSOLE_SEPARATOR", DefaultLogConsoleSeparator)
	config.LogExportPath = getEnvOrDefault("LOG_EXPORT_PATH", "")
	config.HideSensitiveData = parseBool(getEnvOrDefault("HIDE_SENSITIVE_DATA", "true"))

	// Cookies
	config.CookieJarEnabled = parseBool(getEnvOrDefault("COOKIE_JAR_ENABLED", "false"))
	config.CustomCookies = parseKeyValues(getEnvOrDefault("CUSTOM_COOKIES", ""))

	// Misc
	config.MaxConcurrentRequests = parseInt(getEnvOrDefault("MAX_CONCURRENT_REQUESTS", ""), DefaultMaxConcurrentRequests)
	config.CustomTimeout = parseDuration(getEnvOrDefault("CUSTOM_TIMEOUT", ""), DefaultCustomTimeout)
	config.TokenRefreshBufferPeriod = parseDuration(getEnvOrDefault("TOKEN_REFRESH_BUFFER_PERIOD", ""), DefaultTokenRefreshBufferPeriod)
	config.FollowRedirects = parseBool(getEnvOrDefault("FOLLOW_REDIRECTS", "true"))
	config.MaxRedirects = parseInt(getEnvOrDefault("MAX_REDIRECTS", ""), DefaultMaxRedirects)

	// Proxy
	config.ProxyURL = getEnvOrDefault("PROXY_URL", "")
	config.ProxyUsername = getEnvOrDefault("PROXY_USERNAME", "")
	config.ProxyPassword = getEnvOrDefault("PROXY_PASSWORD", "")

	if err := validateClientConfig(config, true); err != nil {
		return nil, err
	}

	return config, nil
}

// validateClientConfig checks config for values the client cannot run with. When
// populateDefaults is set, empty fields are filled in first.
func validateClientConfig(config *ClientConfig, populateDefaults bool) error {
	if populateDefaults {
		SetDefaultValuesClientConfig(config)
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", config.BaseURL, err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return fmt.Errorf("base url must use http or https: %q", config.BaseURL)
	}
	if baseURL.Host == "" {
		return fmt.Errorf("base url has no host: %q", config.BaseURL)
	}

	if !strings.HasPrefix(config.RefreshPath, "/") {
		return fmt.Errorf("refresh path must start with '/': %q", config.RefreshPath)
	}

	if !slices.Contains(validLogLevels, config.LogLevel) {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if !slices.Contains(validLogFormats, config.LogOutputFormat) {
		return fmt.Errorf("invalid log output format: %s", config.LogOutputFormat)
	}

	if config.MaxConcurrentRequests < 1 {
		return errors.New("maximum concurrent requests cannot be less than 1")
	}

	if config.CustomTimeout < 0 {
		return errors.New("timeout cannot be less than 0 seconds")
	}

	if config.TokenRefreshBufferPeriod < 0 {
		return errors.New("refresh buffer period cannot be less than 0 seconds")
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1")
	}

	return nil
}

// SetDefaultValuesClientConfig fills every empty field of config with its default.
// Booleans are left alone, their zero value is the default.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.RefreshPath == "" {
		config.RefreshPath = DefaultRefreshPath
	}

	if config.LoginRoute == "" {
		config.LoginRoute = DefaultLoginRoute
	}

	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevelString
	}

	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormatString
	}

	if config.LogConsoleSeparator == "" {
		config.LogConsoleSeparator = DefaultLogConsoleSeparator
	}

	if config.MaxConcurrentRequests == 0 {
		config.MaxConcurrentRequests = DefaultMaxConcurrentRequests
	}

	if config.CustomTimeout == 0 {
		config.CustomTimeout = DefaultCustomTimeout
	}

	if config.MaxRedirects == 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
}

// validateFilePath cleans path and checks it names an existing file with a supported extension.
func validateFilePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the absolute path of the configuration file: %s, error: %w", path, err)
	}

	if !slices.Contains(configFileExtensions, strings.ToLower(filepath.Ext(absPath))) {
		return "", fmt.Errorf("invalid file extension for configuration file: %s, expected one of %v", path, configFileExtensions)
	}

	return absPath, nil
}

// Helper function to get a SIMBUAH_ prefixed environment variable or default value
func getEnvOrDefault(envKey string, defaultValue string) string {
	if value, exists := os.LookupEnv(envPrefix + envKey); exists {
		return value
	}
	return defaultValue
}

// Helper function to parse boolean from environment variable
func parseBool(value string) bool {
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return result
}

// Helper function to parse int from environment variable
func parseInt(value string, defaultVal int) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultVal
	}
	return result
}

// Helper function to parse duration from environment variable
func parseDuration(value string, defaultVal Duration) Duration {
	result, err := time.ParseDuration(value)
	if err != nil {
		return defaultVal
	}
	return Duration(result)
}

// parseKeyValues reads "a=1,b=2" into a map. Malformed pairs are skipped.
func parseKeyValues(value string) map[string]string {
	if value == "" {
		return nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}
