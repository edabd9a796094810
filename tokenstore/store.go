// Package tokenstore persists the session credentials used by the HTTP client.
package tokenstore

import "context"

// Fixed keys under which the session credentials are stored.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store is a string key/value store for session credentials.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or "" with a nil error when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// StoreError indicates a credential storage failure.
type StoreError struct {
	Operation string // "get", "set", "delete"
	Key       string
	Cause     error
}

func (e *StoreError) Error() string {
	msg := e.Operation + " credential"
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Purge removes both session credentials.
func Purge(ctx context.Context, s Store) error {
	return s.Delete(ctx, AccessTokenKey, RefreshTokenKey)
}

// SaveSession stores a freshly issued credential pair. An empty refresh token leaves
// the stored one untouched.
func SaveSession(ctx context.Context, s Store, accessToken, refreshToken string) error {
	if err := s.Set(ctx, AccessTokenKey, accessToken); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}
	return s.Set(ctx, RefreshTokenKey, refreshToken)
}
