package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopDriver struct{ Driver }

func TestSession_AcquireIsExclusive(t *testing.T) {
	s := NewSession(nopDriver{})

	d, release, err := s.Acquire()
	require.NoError(t, err)
	assert.NotNil(t, d)

	_, _, err = s.Acquire()
	assert.ErrorIs(t, err, ErrSessionBusy)

	release()
	release() // second call is a no-op

	_, release2, err := s.Acquire()
	require.NoError(t, err)
	release2()
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("selenium", "http://localhost", true)
	assert.Error(t, err)
}

func TestCleanupProfiles(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	require.Equal(t, int32(0), GetActiveSessionCount())

	dir, err := os.MkdirTemp("", profilePattern)
	require.NoError(t, err)

	CleanupProfiles()

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "expected %s to be removed", dir)
}

func TestCleanupProfiles_SkipsWhileActive(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dir, err := os.MkdirTemp("", profilePattern)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	activeRodSessions.Add(1)
	defer activeRodSessions.Add(-1)

	CleanupProfiles()

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestCleanupProfiles_LeavesOtherDirs(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	other, err := os.MkdirTemp("", "unrelated-*")
	require.NoError(t, err)
	profile, err := os.MkdirTemp("", profilePattern)
	require.NoError(t, err)
	require.Equal(t, tmp, filepath.Dir(profile))

	CleanupProfiles()

	_, err = os.Stat(other)
	assert.NoError(t, err)
	_, err = os.Stat(profile)
	assert.True(t, os.IsNotExist(err))
}
