package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

func TestPolicy_RequestPermission(t *testing.T) {
	ctx := context.Background()
	p := NewPolicy(true, false)

	status, err := p.RequestPermission(ctx, model.MediaKindGallery)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionGranted, status)

	status, err = p.RequestPermission(ctx, model.MediaKindCamera)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDenied, status)

	p.Set(model.MediaKindCamera, true)
	status, err = p.RequestPermission(ctx, model.MediaKindCamera)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionGranted, status)

	_, err = p.RequestPermission(ctx, model.MediaKind("microphone"))
	assert.ErrorIs(t, err, model.ErrUnknownMediaKind)
}

func TestPolicy_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := NewPolicy(true, true).RequestPermission(ctx, model.MediaKindGallery)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, model.PermissionDenied, status)
}
