// Package media implements the external surfaces avatars are acquired from:
// a directory gallery, an object-storage gallery and a camera command.
package media

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrInvalidSelection is returned when the selected item does not exist
	// or is not an image.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrCameraUnavailable is returned when no capture command is configured.
	ErrCameraUnavailable = errors.New("camera unavailable")
)

func acceptsImages(mediaTypes []string) bool {
	return len(mediaTypes) == 0 || slices.Contains(mediaTypes, "images")
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func mimeByName(name string) string {
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
}

// dimensions reads pixel size from the image header; zero when unknown.
func dimensions(r io.Reader) (int, int) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
