package tokenstore

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return NewRedisStore(rdb, "test", ttl), mr
}

// storeFactories lists every implementation so each behavioural test runs against all of them.
func storeFactories(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"file":   func() Store { return NewFileStore(filepath.Join(t.TempDir(), "session.json")) },
		"redis": func() Store {
			s, _ := newRedisStore(t, 0)
			return s
		},
	}
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory()

			v, err := s.Get(ctx, AccessTokenKey)
			require.NoError(t, err)
			assert.Empty(t, v, "absent key reads as empty")

			require.NoError(t, s.Set(ctx, AccessTokenKey, "a-1"))
			require.NoError(t, s.Set(ctx, RefreshTokenKey, "r-1"))
			require.NoError(t, s.Set(ctx, AccessTokenKey, "a-2"))

			v, err = s.Get(ctx, AccessTokenKey)
			require.NoError(t, err)
			assert.Equal(t, "a-2", v)

			require.NoError(t, Purge(ctx, s))
			require.NoError(t, Purge(ctx, s), "deleting missing keys is not an error")

			for _, key := range []string{AccessTokenKey, RefreshTokenKey} {
				v, err = s.Get(ctx, key)
				require.NoError(t, err)
				assert.Empty(t, v)
			}
		})
	}
}

func TestSaveSessionKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SaveSession(ctx, s, "a-1", "r-1"))
	require.NoError(t, SaveSession(ctx, s, "a-2", ""))

	access, _ := s.Get(ctx, AccessTokenKey)
	refresh, _ := s.Get(ctx, RefreshTokenKey)
	assert.Equal(t, "a-2", access)
	assert.Equal(t, "r-1", refresh)
}

func TestMemoryStoreZeroValue(t *testing.T) {
	var s MemoryStore
	require.NoError(t, s.Set(context.Background(), "k", "v"))
	v, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()

	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory()
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					assert.NoError(t, s.Set(ctx, AccessTokenKey, "token"))
					_, err := s.Get(ctx, AccessTokenKey)
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			v, err := s.Get(ctx, AccessTokenKey)
			require.NoError(t, err)
			assert.Equal(t, "token", v)
		})
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &StoreError{Operation: "set", Key: AccessTokenKey, Cause: cause}

	assert.Equal(t, "set credential access_token: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}
