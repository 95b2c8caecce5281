package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-manager-api/models"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoad_Empty(t *testing.T) {
	s := openMemory(t)
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveLoadClear(t *testing.T) {
	s := openMemory(t)
	want := Session{
		User:  models.User{ID: "u1", Username: "alice", Email: "alice@example.com", IsAdmin: true},
		Token: "tok",
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.User.ID, got.User.ID)
	assert.Equal(t, want.User.Username, got.User.Username)
	assert.True(t, got.User.IsAdmin)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.NoError(t, s.Clear())
}

func TestSave_Overwrites(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.Save(Session{User: models.User{ID: "a"}, Token: "1"}))
	require.NoError(t, s.Save(Session{User: models.User{ID: "b"}, Token: "2"}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "b", got.User.ID)
	assert.Equal(t, "2", got.Token)
}

func TestOpen_DirSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Save(Session{User: models.User{ID: "u1"}, Token: "tok"}))
	require.NoError(t, s.Close())

	s, err = Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}
