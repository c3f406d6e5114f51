package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophkeeper-profile/internal/mocks"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

func TestObjectGallery_Launch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty selection cancels", func(t *testing.T) {
		g := NewObjectGallery(mocks.NewObjectStorage(t))

		res, err := g.Launch(ctx, model.PickRequest{})
		require.NoError(t, err)
		assert.True(t, res.Canceled)
	})

	t.Run("key selection", func(t *testing.T) {
		st := mocks.NewObjectStorage(t)
		st.On("Bucket").Return("photos")
		st.On("Stat", mock.Anything, "me.jpg").Return(model.ObjectInfo{Key: "me.jpg", Size: 10, ContentType: "image/jpeg"}, nil)

		res, err := NewObjectGallery(st).Launch(ctx, model.PickRequest{Selection: "me.jpg"})
		require.NoError(t, err)
		require.Len(t, res.Assets, 1)
		assert.Equal(t, "s3://photos/me.jpg", res.Assets[0].URI)
		assert.Equal(t, int64(10), res.Assets[0].FileSize)
	})

	t.Run("uri selection with generic content type", func(t *testing.T) {
		st := mocks.NewObjectStorage(t)
		st.On("Bucket").Return("photos")
		st.On("Stat", mock.Anything, "a/b.png").Return(model.ObjectInfo{Key: "a/b.png", ContentType: "application/octet-stream"}, nil)

		res, err := NewObjectGallery(st).Launch(ctx, model.PickRequest{Selection: "s3://photos/a/b.png"})
		require.NoError(t, err)
		assert.Equal(t, "s3://photos/a/b.png", res.Assets[0].URI)
		assert.Equal(t, "image/png", res.Assets[0].MimeType)
	})

	t.Run("missing object", func(t *testing.T) {
		st := mocks.NewObjectStorage(t)
		st.On("Bucket").Return("photos")
		st.On("Stat", mock.Anything, "gone.jpg").Return(model.ObjectInfo{}, model.ErrNotFound)

		_, err := NewObjectGallery(st).Launch(ctx, model.PickRequest{Selection: "gone.jpg"})
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})

	t.Run("not an image", func(t *testing.T) {
		st := mocks.NewObjectStorage(t)
		st.On("Bucket").Return("photos")
		st.On("Stat", mock.Anything, "cv.pdf").Return(model.ObjectInfo{Key: "cv.pdf", ContentType: "application/pdf"}, nil)

		_, err := NewObjectGallery(st).Launch(ctx, model.PickRequest{Selection: "cv.pdf"})
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})

	t.Run("storage error", func(t *testing.T) {
		st := mocks.NewObjectStorage(t)
		st.On("Bucket").Return("photos")
		st.On("Stat", mock.Anything, "me.jpg").Return(model.ObjectInfo{}, errors.New("timeout"))

		_, err := NewObjectGallery(st).Launch(ctx, model.PickRequest{Selection: "me.jpg"})
		assert.ErrorContains(t, err, "failed to stat gallery object")
		assert.NotErrorIs(t, err, ErrInvalidSelection)
	})
}
