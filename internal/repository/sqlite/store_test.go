package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestOpen_EmptyPath(t *testing.T) {
	store, err := Open("  ")
	assert.Nil(t, store)
	assert.ErrorContains(t, err, "storage path is required")
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	_, err := store.Get(ctx, model.KeyName)
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, store.Set(ctx, model.KeyName, "Ada"))
	require.NoError(t, store.Set(ctx, model.KeyName, "Grace"))

	got, err := store.Get(ctx, model.KeyName)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got)

	require.NoError(t, store.Delete(ctx, model.KeyName))
	_, err = store.Get(ctx, model.KeyName)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_ReopenKeepsValues(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, model.KeyBio, "line one\nline two"))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, model.KeyBio)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestStore_Get_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM profile_kv WHERE key = ?`)).
		WithArgs(model.KeyEmail).
		WillReturnError(errors.New("disk I/O error"))

	_, err = NewStore(db).Get(context.Background(), model.KeyEmail)
	assert.ErrorContains(t, err, "failed to get value")
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO profile_kv`)).
		WithArgs(model.KeyName, "Ada", sqlmock.AnyArg()).
		WillReturnError(errors.New("database is locked"))

	err = NewStore(db).Set(context.Background(), model.KeyName, "Ada")
	assert.ErrorContains(t, err, "failed to set value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM profile_kv WHERE key = ?`)).
		WithArgs(model.KeyAvatar).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewStore(db).Delete(context.Background(), model.KeyAvatar))
	assert.NoError(t, mock.ExpectationsWereMet())
}
