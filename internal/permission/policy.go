package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var _ model.PermissionRequester = (*Policy)(nil)

// Policy answers permission requests from the user's recorded choices.
type Policy struct {
	mu      sync.RWMutex
	granted map[model.MediaKind]bool
}

// NewPolicy creates a Policy with the given answers for gallery and camera.
func NewPolicy(gallery, camera bool) *Policy {
	return &Policy{granted: map[model.MediaKind]bool{
		model.MediaKindGallery: gallery,
		model.MediaKindCamera:  camera,
	}}
}

// RequestPermission reports the recorded answer for kind.
func (p *Policy) RequestPermission(ctx context.Context, kind model.MediaKind) (model.PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return model.PermissionDenied, err
	}

	p.mu.RLock()
	granted, ok := p.granted[kind]
	p.mu.RUnlock()
	if !ok {
		return model.PermissionDenied, fmt.Errorf("%w: %s", model.ErrUnknownMediaKind, kind)
	}
	if granted {
		return model.PermissionGranted, nil
	}
	return model.PermissionDenied, nil
}

// Set records a new answer for kind.
func (p *Policy) Set(kind model.MediaKind, granted bool) {
	p.mu.Lock()
	p.granted[kind] = granted
	p.mu.Unlock()
}
