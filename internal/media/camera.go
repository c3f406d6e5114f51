package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var _ model.MediaSurface = (*Camera)(nil)

// Camera captures a new image by running an external command.
//
// The command receives the output path as its last argument and the picker
// options in PROFILE_CAPTURE_* environment variables. Exiting successfully
// without writing the file means the user cancelled the capture.
type Camera struct {
	command []string
	dir     string
}

// NewCamera creates a Camera writing captures into dir.
func NewCamera(command []string, dir string) *Camera {
	return &Camera{command: command, dir: dir}
}

func (c *Camera) Launch(ctx context.Context, req model.PickRequest) (model.PickResult, error) {
	if len(c.command) == 0 {
		return model.PickResult{}, ErrCameraUnavailable
	}
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return model.PickResult{}, fmt.Errorf("failed to create capture dir: %w", err)
	}
	dir, err := filepath.Abs(c.dir)
	if err != nil {
		return model.PickResult{}, fmt.Errorf("failed to resolve capture dir: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+".jpg")

	args := append(append([]string{}, c.command[1:]...), path)
	cmd := exec.CommandContext(ctx, c.command[0], args...)
	cmd.Env = append(os.Environ(), captureEnv(req.Options)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(path)
		return model.PickResult{}, fmt.Errorf("camera command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return model.PickResult{Canceled: true}, nil
	}
	if err != nil {
		return model.PickResult{}, fmt.Errorf("failed to stat capture: %w", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(path)
		return model.PickResult{Canceled: true}, nil
	}

	asset := model.Asset{
		URI:      (&url.URL{Scheme: "file", Path: path}).String(),
		MimeType: "image/jpeg",
		FileSize: info.Size(),
	}
	if f, err := os.Open(path); err == nil {
		asset.Width, asset.Height = dimensions(f)
		f.Close()
	}

	return model.PickResult{Assets: []model.Asset{asset}}, nil
}

func captureEnv(opts model.PickerOptions) []string {
	edit := "0"
	if opts.AllowsEditing {
		edit = "1"
	}
	return []string{
		"PROFILE_CAPTURE_EDIT=" + edit,
		fmt.Sprintf("PROFILE_CAPTURE_ASPECT=%d:%d", opts.AspectX, opts.AspectY),
		fmt.Sprintf("PROFILE_CAPTURE_QUALITY=%.2f", opts.Quality),
	}
}
