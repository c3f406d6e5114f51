package service

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// Session is one profile editing session. It owns the in-memory profile:
// edits and acquired avatars stay in memory until Save, except RemovePhoto
// which deletes the stored avatar immediately.
//
// Operations are serialized; only one runs at a time.
type Session struct {
	store    *ProfileStore
	avatar   *Avatar
	notifier model.Notifier
	logger   *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	profile model.Profile
}

func NewSession(store *ProfileStore, avatar *Avatar, notifier model.Notifier, logger *logger.Logger) *Session {
	return &Session{
		store:    store,
		avatar:   avatar,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Mount loads the stored profile into memory, replacing unsaved edits.
func (s *Session) Mount(ctx context.Context) model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = s.store.Load(ctx)
	return s.profile
}

// Profile returns the in-memory profile.
func (s *Session) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Update applies field edits in memory.
func (s *Session) Update(u model.ProfileUpdate) model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Name != nil {
		s.profile.Name = *u.Name
	}
	if u.Email != nil {
		s.profile.Email = *u.Email
	}
	if u.Bio != nil {
		s.profile.Bio = *u.Bio
	}
	return s.profile
}

func (s *Session) SetName(name string) {
	s.Update(model.ProfileUpdate{Name: &name})
}

func (s *Session) SetEmail(email string) {
	s.Update(model.ProfileUpdate{Email: &email})
}

func (s *Session) SetBio(bio string) {
	s.Update(model.ProfileUpdate{Bio: &bio})
}

// PickImage selects an existing image from the gallery.
func (s *Session) PickImage(ctx context.Context, selection string) (Acquisition, error) {
	return s.acquire(ctx, model.MediaKindGallery, selection)
}

// TakePhoto captures a new image with the camera.
func (s *Session) TakePhoto(ctx context.Context) (Acquisition, error) {
	return s.acquire(ctx, model.MediaKindCamera, "")
}

func (s *Session) acquire(ctx context.Context, kind model.MediaKind, selection string) (Acquisition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acq, err := s.avatar.Acquire(ctx, kind, selection)
	if err != nil {
		return acq, err
	}
	if acq.Committed() {
		s.profile.AvatarURI = acq.URI
	}
	return acq, nil
}

// RemovePhoto clears the avatar in memory and deletes it from storage
// without waiting for Save. The in-memory avatar is cleared even when the
// delete fails.
func (s *Session) RemovePhoto(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.AvatarURI = ""
	err := s.store.RemoveAvatar(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Session: failed to remove avatar", "error", err.Error())
	}
	s.notifier.Notify(ctx, model.Notice{
		Level:   model.NoticeInfo,
		Title:   "Removed",
		Message: "Profile photo has been reset",
		At:      s.now(),
	})
	return err
}

// Save writes the in-memory profile to storage.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Save(ctx, s.profile)
}
