package model

import (
	"context"
	"time"
)

// KeyValueStore is the durable string key-value storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	ModifiedAt  time.Time
}

// ObjectStorage is read access to an object bucket holding gallery images.
type ObjectStorage interface {
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Exists(ctx context.Context, key string) (bool, error)
	Bucket() string
}
