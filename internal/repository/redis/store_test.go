package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// fakeRedis implements redisAPI over a map.
type fakeRedis struct {
	values map[string]string
	err    error

	lastTTL time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.values[key] = value.(string)
	f.lastTTL = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	if f.err != nil {
		return goredis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeRedis()
	s := NewStoreWithAPI(api, "profile:")

	_, err := s.Get(ctx, model.KeyName)
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Set(ctx, model.KeyName, "Ada"))
	assert.Equal(t, "Ada", api.values["profile:user_name"])
	assert.Zero(t, api.lastTTL)

	got, err := s.Get(ctx, model.KeyName)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got)

	require.NoError(t, s.Delete(ctx, model.KeyName))
	assert.NotContains(t, api.values, "profile:user_name")
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	api := newFakeRedis()
	api.err = errors.New("connection refused")
	s := NewStoreWithAPI(api, "")

	_, err := s.Get(ctx, model.KeyBio)
	assert.ErrorContains(t, err, "failed to get value")
	assert.NotErrorIs(t, err, model.ErrNotFound)

	assert.ErrorContains(t, s.Set(ctx, model.KeyBio, "hi"), "failed to set value")
	assert.ErrorContains(t, s.Delete(ctx, model.KeyBio), "failed to delete value")
}
