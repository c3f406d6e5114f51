package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// redisAPI is the subset of *goredis.Client used by Store.
type redisAPI interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

var _ model.KeyValueStore = (*Store)(nil)

// Store keeps profile values as plain redis strings under a key prefix.
// Values never expire.
type Store struct {
	api    redisAPI
	prefix string
}

// NewStore creates a Store on top of a redis client.
func NewStore(client *goredis.Client, prefix string) *Store {
	return NewStoreWithAPI(client, prefix)
}

// NewStoreWithAPI allows injecting a fake client in tests.
func NewStoreWithAPI(api redisAPI, prefix string) *Store {
	return &Store{api: api, prefix: prefix}
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.api.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.api.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.api.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}
