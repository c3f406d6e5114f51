package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by key-value stores for absent keys.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is returned when the user declines media access.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnknownMediaKind is returned for kinds with no registered surface.
	ErrUnknownMediaKind = errors.New("unknown media kind")
)

// StorageError describes a failed read or write against the key-value store.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
