package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// MediaSurface mocks model.MediaSurface.
type MediaSurface struct {
	mock.Mock
}

func NewMediaSurface(t testingT) *MediaSurface {
	m := &MediaSurface{}
	register(t, &m.Mock)
	return m
}

func (m *MediaSurface) Launch(ctx context.Context, req model.PickRequest) (model.PickResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.PickResult), args.Error(1)
}

// PermissionRequester mocks model.PermissionRequester.
type PermissionRequester struct {
	mock.Mock
}

func NewPermissionRequester(t testingT) *PermissionRequester {
	m := &PermissionRequester{}
	register(t, &m.Mock)
	return m
}

func (m *PermissionRequester) RequestPermission(ctx context.Context, kind model.MediaKind) (model.PermissionStatus, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(model.PermissionStatus), args.Error(1)
}

// ObjectStorage mocks model.ObjectStorage.
type ObjectStorage struct {
	mock.Mock
}

func NewObjectStorage(t testingT) *ObjectStorage {
	m := &ObjectStorage{}
	register(t, &m.Mock)
	return m
}

func (m *ObjectStorage) Stat(ctx context.Context, key string) (model.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(model.ObjectInfo), args.Error(1)
}

func (m *ObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *ObjectStorage) Bucket() string {
	return m.Called().String(0)
}
