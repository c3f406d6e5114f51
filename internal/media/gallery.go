package media

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var _ model.MediaSurface = (*DirGallery)(nil)

// DirGallery selects existing images from a local directory.
type DirGallery struct {
	root string
}

// NewDirGallery creates a gallery rooted at dir.
func NewDirGallery(dir string) (*DirGallery, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve gallery dir: %w", err)
	}
	return &DirGallery{root: root}, nil
}

// Launch resolves the selection relative to the gallery root.
// A selection may be a relative path or a file URI inside the root.
func (g *DirGallery) Launch(ctx context.Context, req model.PickRequest) (model.PickResult, error) {
	if err := ctx.Err(); err != nil {
		return model.PickResult{}, err
	}
	selection := strings.TrimSpace(req.Selection)
	if selection == "" {
		return model.PickResult{Canceled: true}, nil
	}
	if !acceptsImages(req.Options.MediaTypes) {
		return model.PickResult{}, fmt.Errorf("gallery only serves images: %w", ErrInvalidSelection)
	}

	path, err := g.resolve(selection)
	if err != nil {
		return model.PickResult{}, err
	}
	if err := g.confine(selection, path); err != nil {
		return model.PickResult{}, err
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return model.PickResult{}, fmt.Errorf("%q: %w", selection, ErrInvalidSelection)
	}
	contentType := mimeByName(path)
	if !isImageType(contentType) {
		return model.PickResult{}, fmt.Errorf("%q is not an image: %w", selection, ErrInvalidSelection)
	}

	asset := model.Asset{
		URI:      (&url.URL{Scheme: "file", Path: path}).String(),
		MimeType: contentType,
		FileSize: info.Size(),
	}
	if f, err := os.Open(path); err == nil {
		asset.Width, asset.Height = dimensions(f)
		f.Close()
	}

	return model.PickResult{Assets: []model.Asset{asset}}, nil
}

func (g *DirGallery) resolve(selection string) (string, error) {
	if strings.HasPrefix(selection, "file://") {
		u, err := url.Parse(selection)
		if err != nil {
			return "", fmt.Errorf("%q: %w", selection, ErrInvalidSelection)
		}
		path := filepath.Clean(u.Path)
		if !within(g.root, path) {
			return "", fmt.Errorf("%q is outside the gallery: %w", selection, ErrInvalidSelection)
		}
		return path, nil
	}

	return filepath.Join(g.root, filepath.Clean(string(filepath.Separator)+selection)), nil
}

// confine rejects paths whose symlink-free location leaves the gallery root.
func (g *DirGallery) confine(selection, path string) error {
	root, err := filepath.EvalSymlinks(g.root)
	if err != nil {
		return fmt.Errorf("failed to resolve gallery dir: %w", err)
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("%q: %w", selection, ErrInvalidSelection)
	}
	if !within(root, target) {
		return fmt.Errorf("%q is outside the gallery: %w", selection, ErrInvalidSelection)
	}
	return nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
