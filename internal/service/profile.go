package service

import (
	"context"
	"errors"
	"time"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// ProfileStore reads and writes the profile fields in the key-value store.
type ProfileStore struct {
	kv       model.KeyValueStore
	notifier model.Notifier
	logger   *logger.Logger
	now      func() time.Time
}

func NewProfileStore(kv model.KeyValueStore, notifier model.Notifier, logger *logger.Logger) *ProfileStore {
	return &ProfileStore{
		kv:       kv,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Load reads the profile. Absent or empty keys keep their defaults.
//
// Read failures are logged and never returned; any failure leaves the
// whole profile at its defaults.
func (s *ProfileStore) Load(ctx context.Context) model.Profile {
	keys := []string{model.KeyName, model.KeyEmail, model.KeyBio, model.KeyAvatar}
	values := make([]string, len(keys))

	for i, key := range keys {
		value, err := s.kv.Get(ctx, key)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "Profile store: failed to load profile",
				"error", (&model.StorageError{Op: "get", Key: key, Err: err}).Error())
			return model.Profile{}
		}
		values[i] = value
	}

	return model.Profile{
		Name:      values[0],
		Email:     values[1],
		Bio:       values[2],
		AvatarURI: values[3],
	}
}

// Save overwrites all four keys; an absent avatar deletes its key.
//
// Writes stop at the first failure without rolling back earlier ones, so a
// failed save can leave the store holding a mix of old and new values.
func (s *ProfileStore) Save(ctx context.Context, p model.Profile) error {
	if err := s.write(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "Profile store: failed to save profile", "error", err.Error())
		s.notify(ctx, model.NoticeError, "Error", "Could not save profile")
		return err
	}

	s.notify(ctx, model.NoticeSuccess, "Success", "Profile saved successfully")
	return nil
}

func (s *ProfileStore) write(ctx context.Context, p model.Profile) error {
	values := []struct{ key, value string }{
		{model.KeyName, p.Name},
		{model.KeyEmail, p.Email},
		{model.KeyBio, p.Bio},
	}
	for _, v := range values {
		if err := s.kv.Set(ctx, v.key, v.value); err != nil {
			return &model.StorageError{Op: "set", Key: v.key, Err: err}
		}
	}

	if p.HasAvatar() {
		if err := s.kv.Set(ctx, model.KeyAvatar, p.AvatarURI); err != nil {
			return &model.StorageError{Op: "set", Key: model.KeyAvatar, Err: err}
		}
		return nil
	}

	return s.RemoveAvatar(ctx)
}

// RemoveAvatar deletes the stored avatar reference.
func (s *ProfileStore) RemoveAvatar(ctx context.Context) error {
	if err := s.kv.Delete(ctx, model.KeyAvatar); err != nil {
		return &model.StorageError{Op: "delete", Key: model.KeyAvatar, Err: err}
	}
	return nil
}

func (s *ProfileStore) notify(ctx context.Context, level model.NoticeLevel, title, message string) {
	s.notifier.Notify(ctx, model.Notice{Level: level, Title: title, Message: message, At: s.now()})
}
