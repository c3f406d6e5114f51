package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophkeeper-profile/internal/mocks"
	"github.com/dtroode/gophkeeper-profile/internal/model"
	"github.com/dtroode/gophkeeper-profile/internal/notify"
	"github.com/dtroode/gophkeeper-profile/internal/repository/memory"
	"github.com/dtroode/gophkeeper-profile/internal/testutil"
)

type sessionFixture struct {
	kv          model.KeyValueStore
	permissions *mocks.PermissionRequester
	gallery     *mocks.MediaSurface
	camera      *mocks.MediaSurface
	notices     *notify.Recorder
	session     *Session
}

func newSessionFixture(t *testing.T, kv model.KeyValueStore) sessionFixture {
	t.Helper()

	f := sessionFixture{
		kv:          kv,
		permissions: mocks.NewPermissionRequester(t),
		gallery:     mocks.NewMediaSurface(t),
		camera:      mocks.NewMediaSurface(t),
		notices:     notify.NewRecorder(10),
	}
	f.session = f.newSession()
	return f
}

// newSession opens a second session over the same store, like remounting
// the editor.
func (f sessionFixture) newSession() *Session {
	lg := testutil.MakeNoopLogger()
	store := NewProfileStore(f.kv, f.notices, lg)
	avatar := NewAvatar(f.permissions, f.gallery, f.camera, f.notices, lg)
	return NewSession(store, avatar, f.notices, lg)
}

func (f sessionFixture) grantAndPick(uri string) {
	f.permissions.On("RequestPermission", mock.Anything, model.MediaKindGallery).Return(model.PermissionGranted, nil).Once()
	f.gallery.On("Launch", mock.Anything, mock.Anything).Return(model.PickResult{Assets: []model.Asset{{URI: uri}}}, nil).Once()
}

func TestSession_MountEmptyStore(t *testing.T) {
	f := newSessionFixture(t, memory.NewStore())

	got := f.session.Mount(context.Background())

	assert.Equal(t, model.Profile{Name: "", Email: "", Bio: "", AvatarURI: ""}, got)
	assert.Equal(t, got, f.session.Profile())
}

func TestSession_EditSaveRemount(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	f := newSessionFixture(t, kv)
	f.grantAndPick("file://x.jpg")

	f.session.Mount(ctx)
	f.session.SetName("Ada")
	f.session.SetEmail("a@b.com")
	f.session.SetBio("hi")
	acq, err := f.session.PickImage(ctx, "x.jpg")
	require.NoError(t, err)
	require.True(t, acq.Committed())

	assert.False(t, kv.Has(model.KeyAvatar), "acquisition must not write storage before save")

	require.NoError(t, f.session.Save(ctx))

	want := model.Profile{Name: "Ada", Email: "a@b.com", Bio: "hi", AvatarURI: "file://x.jpg"}
	assert.Equal(t, want, f.newSession().Mount(ctx))
}

func TestSession_UnsavedEditsAreDiscarded(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, memory.NewStore())

	f.session.Mount(ctx)
	name := "Ada"
	got := f.session.Update(model.ProfileUpdate{Name: &name})
	assert.Equal(t, "Ada", got.Name)

	assert.Equal(t, model.Profile{}, f.newSession().Mount(ctx))
}

func TestSession_CancelKeepsAvatar(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, memory.NewStore())
	f.grantAndPick("file://x.jpg")
	f.permissions.On("RequestPermission", mock.Anything, model.MediaKindCamera).Return(model.PermissionGranted, nil).Once()
	f.camera.On("Launch", mock.Anything, mock.Anything).Return(model.PickResult{Canceled: true}, nil).Once()

	f.session.Mount(ctx)
	_, err := f.session.PickImage(ctx, "x.jpg")
	require.NoError(t, err)

	acq, err := f.session.TakePhoto(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, acq.State)
	assert.Equal(t, "file://x.jpg", f.session.Profile().AvatarURI)
}

func TestSession_DeniedKeepsAvatar(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, memory.NewStore())
	f.permissions.On("RequestPermission", mock.Anything, model.MediaKindCamera).Return(model.PermissionDenied, nil).Once()

	f.session.Mount(ctx)
	_, err := f.session.TakePhoto(ctx)

	assert.ErrorIs(t, err, model.ErrPermissionDenied)
	assert.Empty(t, f.session.Profile().AvatarURI)
	f.camera.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything)
}

func TestSession_RemovePhotoWithoutSave(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	require.NoError(t, kv.Set(ctx, model.KeyAvatar, "file://old.jpg"))
	f := newSessionFixture(t, kv)
	f.grantAndPick("file://x.jpg")

	assert.Equal(t, "file://old.jpg", f.session.Mount(ctx).AvatarURI)
	_, err := f.session.PickImage(ctx, "x.jpg")
	require.NoError(t, err)

	require.NoError(t, f.session.RemovePhoto(ctx))

	assert.False(t, kv.Has(model.KeyAvatar))
	assert.Empty(t, f.session.Profile().AvatarURI)

	notices := f.notices.Drain()
	require.NotEmpty(t, notices)
	last := notices[len(notices)-1]
	assert.Equal(t, "Removed", last.Title)
	assert.Equal(t, "Profile photo has been reset", last.Message)
}

func TestSession_RemovePhotoDeleteFailure(t *testing.T) {
	ctx := context.Background()
	kv := &failingStore{Store: memory.NewStore(), deleteErr: errDiskFull}
	require.NoError(t, kv.Store.Set(ctx, model.KeyAvatar, "file://old.jpg"))
	f := newSessionFixture(t, kv)

	f.session.Mount(ctx)
	err := f.session.RemovePhoto(ctx)

	var storageErr *model.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "delete", storageErr.Op)
	assert.Empty(t, f.session.Profile().AvatarURI)
}

func TestSession_SaveFailureKeepsSessionUsable(t *testing.T) {
	ctx := context.Background()
	kv := &failingStore{Store: memory.NewStore(), failOnSet: 1}
	f := newSessionFixture(t, kv)

	f.session.Mount(ctx)
	f.session.SetName("Ada")
	require.Error(t, f.session.Save(ctx))

	require.NoError(t, f.session.Save(ctx))
	assert.Equal(t, "Ada", f.newSession().Mount(ctx).Name)

	notices := f.notices.Drain()
	require.Len(t, notices, 2)
	assert.Equal(t, model.NoticeError, notices[0].Level)
	assert.Equal(t, model.NoticeSuccess, notices[1].Level)
}
