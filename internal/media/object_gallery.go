package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var _ model.MediaSurface = (*ObjectGallery)(nil)

// ObjectGallery selects existing images from an object storage bucket.
// Committed URIs have the form s3://<bucket>/<key>.
type ObjectGallery struct {
	storage model.ObjectStorage
}

// NewObjectGallery creates a gallery backed by storage.
func NewObjectGallery(storage model.ObjectStorage) *ObjectGallery {
	return &ObjectGallery{storage: storage}
}

func (g *ObjectGallery) Launch(ctx context.Context, req model.PickRequest) (model.PickResult, error) {
	selection := strings.TrimSpace(req.Selection)
	if selection == "" {
		return model.PickResult{Canceled: true}, nil
	}
	if !acceptsImages(req.Options.MediaTypes) {
		return model.PickResult{}, fmt.Errorf("gallery only serves images: %w", ErrInvalidSelection)
	}

	prefix := g.uriPrefix()
	key := strings.TrimPrefix(strings.TrimPrefix(selection, prefix), "/")
	if key == "" {
		return model.PickResult{}, fmt.Errorf("%q: %w", selection, ErrInvalidSelection)
	}

	info, err := g.storage.Stat(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return model.PickResult{}, fmt.Errorf("%q: %w", selection, ErrInvalidSelection)
	}
	if err != nil {
		return model.PickResult{}, fmt.Errorf("failed to stat gallery object: %w", err)
	}

	contentType := info.ContentType
	if !isImageType(contentType) {
		contentType = mimeByName(key)
	}
	if !isImageType(contentType) {
		return model.PickResult{}, fmt.Errorf("%q is not an image: %w", selection, ErrInvalidSelection)
	}

	return model.PickResult{Assets: []model.Asset{{
		URI:      prefix + key,
		MimeType: contentType,
		FileSize: info.Size,
	}}}, nil
}

func (g *ObjectGallery) uriPrefix() string {
	return "s3://" + g.storage.Bucket() + "/"
}
