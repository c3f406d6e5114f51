package model

import "context"

// MediaKind selects the avatar source.
type MediaKind string

const (
	// MediaKindGallery picks an existing image.
	MediaKindGallery MediaKind = "gallery"
	// MediaKindCamera captures a new image.
	MediaKindCamera MediaKind = "camera"
)

// PermissionStatus is the outcome of a permission request.
type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
)

// PermissionRequester asks the user for access to a media source.
type PermissionRequester interface {
	RequestPermission(ctx context.Context, kind MediaKind) (PermissionStatus, error)
}

// PickerOptions configures a media surface launch.
type PickerOptions struct {
	MediaTypes    []string
	AllowsEditing bool
	AspectX       int
	AspectY       int
	Quality       float64
}

// AvatarPickerOptions returns the fixed options used for avatar acquisition
// from kind: square crop and reduced quality. Only the gallery is limited to
// images; the camera produces a photo regardless.
func AvatarPickerOptions(kind MediaKind) PickerOptions {
	opts := PickerOptions{
		AllowsEditing: true,
		AspectX:       1,
		AspectY:       1,
		Quality:       0.7,
	}
	if kind == MediaKindGallery {
		opts.MediaTypes = []string{"images"}
	}
	return opts
}

// PickRequest is passed to a media surface.
//
// Selection identifies the item chosen by the user on selection surfaces;
// an empty selection means the user dismissed the picker.
type PickRequest struct {
	Options   PickerOptions
	Selection string
}

// Asset is a single image returned by a media surface.
type Asset struct {
	URI      string
	MimeType string
	FileSize int64
	Width    int
	Height   int
}

// PickResult is either cancelled or carries at least one asset.
type PickResult struct {
	Canceled bool
	Assets   []Asset
}

// MediaSurface is an external capture or selection surface.
type MediaSurface interface {
	Launch(ctx context.Context, req PickRequest) (PickResult, error)
}
