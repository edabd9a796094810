package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "simbuah:session"

// RedisStore keeps credentials in Redis so several processes can share one session.
type RedisStore struct {
	redis      *redis.Client
	prefix     string
	refreshTTL time.Duration
}

// NewRedisStore returns a RedisStore using the given client. Keys are namespaced under
// prefix (a default is used when empty). A positive refreshTTL expires the stored refresh
// token, mirroring its server-side lifetime; access tokens never expire in the store.
func NewRedisStore(client *redis.Client, prefix string, refreshTTL time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{
		redis:      client,
		prefix:     prefix,
		refreshTTL: refreshTTL,
	}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.redis.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", &StoreError{Operation: "get", Key: key, Cause: err}
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	var ttl time.Duration
	if key == RefreshTokenKey {
		ttl = s.refreshTTL
	}
	if err := s.redis.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return &StoreError{Operation: "set", Key: key, Cause: err}
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.key(key)
	}
	if err := s.redis.Del(ctx, prefixed...).Err(); err != nil {
		return &StoreError{Operation: "delete", Cause: err}
	}
	return nil
}
