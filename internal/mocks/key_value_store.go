package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// KeyValueStore mocks model.KeyValueStore.
type KeyValueStore struct {
	mock.Mock
}

func NewKeyValueStore(t testingT) *KeyValueStore {
	m := &KeyValueStore{}
	register(t, &m.Mock)
	return m
}

func (m *KeyValueStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KeyValueStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KeyValueStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
