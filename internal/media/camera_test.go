package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// shell builds a camera command whose script sees the output path as $1.
func shell(script string) []string {
	return []string{"sh", "-c", script, "camera"}
}

func TestCamera_Launch(t *testing.T) {
	ctx := context.Background()

	t.Run("capture", func(t *testing.T) {
		dir := t.TempDir()
		cam := NewCamera(shell(`printf "$PROFILE_CAPTURE_ASPECT $PROFILE_CAPTURE_QUALITY $PROFILE_CAPTURE_EDIT" > "$1"`), dir)

		res, err := cam.Launch(ctx, model.PickRequest{Options: model.AvatarPickerOptions(model.MediaKindCamera)})
		require.NoError(t, err)
		require.False(t, res.Canceled)
		require.Len(t, res.Assets, 1)

		uri := res.Assets[0].URI
		assert.True(t, strings.HasPrefix(uri, "file://"+dir), uri)
		data, err := os.ReadFile(strings.TrimPrefix(uri, "file://"))
		require.NoError(t, err)
		assert.Equal(t, "1:1 0.70 1", string(data))
		assert.Equal(t, "image/jpeg", res.Assets[0].MimeType)
	})

	t.Run("no file means cancelled", func(t *testing.T) {
		cam := NewCamera(shell(`exit 0`), t.TempDir())

		res, err := cam.Launch(ctx, model.PickRequest{Options: model.AvatarPickerOptions(model.MediaKindCamera)})
		require.NoError(t, err)
		assert.True(t, res.Canceled)
	})

	t.Run("empty file means cancelled", func(t *testing.T) {
		dir := t.TempDir()
		cam := NewCamera(shell(`: > "$1"`), dir)

		res, err := cam.Launch(ctx, model.PickRequest{})
		require.NoError(t, err)
		assert.True(t, res.Canceled)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("command failure", func(t *testing.T) {
		cam := NewCamera(shell(`echo "no device" >&2; exit 3`), t.TempDir())

		_, err := cam.Launch(ctx, model.PickRequest{})
		assert.ErrorContains(t, err, "camera command failed")
		assert.ErrorContains(t, err, "no device")
	})

	t.Run("not configured", func(t *testing.T) {
		cam := NewCamera(nil, filepath.Join(t.TempDir(), "captures"))

		_, err := cam.Launch(ctx, model.PickRequest{})
		assert.ErrorIs(t, err, ErrCameraUnavailable)
	})
}
