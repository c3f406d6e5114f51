package service

import (
	"context"
	"errors"

	"github.com/dtroode/gophkeeper-profile/internal/model"
	"github.com/dtroode/gophkeeper-profile/internal/repository/memory"
)

var errDiskFull = errors.New("disk full")

// failingStore wraps a memory store and fails the n-th Set call.
type failingStore struct {
	*memory.Store
	failOnSet int
	sets      int
	deleteErr error
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.sets == f.failOnSet {
		return errDiskFull
	}
	return f.Store.Set(ctx, key, value)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Store.Delete(ctx, key)
}

func noticeLevel(level model.NoticeLevel) func(model.Notice) bool {
	return func(n model.Notice) bool { return n.Level == level }
}
