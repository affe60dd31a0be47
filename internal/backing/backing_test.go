package backing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymous_ZeroInitialized(t *testing.T) {
	s, err := Anonymous(4096)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.Equal(t, 4096, s.Len())
	assert.False(t, s.FileBacked())
	assert.Empty(t, s.Path())
	for i, b := range s.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestAnonymous_RejectsBadSize(t *testing.T) {
	_, err := Anonymous(0)
	require.ErrorIs(t, err, ErrSize)

	_, err = Anonymous(-1)
	require.ErrorIs(t, err, ErrSize)
}

func TestAnonymous_SyncIsNoop(t *testing.T) {
	s, err := Anonymous(1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	s.Bytes()[10] = 0xAB
	require.NoError(t, s.Sync(0, 1024))
	require.ErrorIs(t, s.Sync(1000, 100), ErrRange)
}

func TestOpenFile_SyncReachesDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phys.img")

	s, err := OpenFile(path, 8192)
	require.NoError(t, err)
	assert.True(t, s.FileBacked())
	assert.Equal(t, path, s.Path())

	copy(s.Bytes()[4096:], []byte("frame-one"))
	require.NoError(t, s.Sync(4096, 9))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 8192)
	assert.Equal(t, "frame-one", string(data[4096:4105]))
}

func TestOpenFile_TruncatesPreviousContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phys.img")
	require.NoError(t, os.WriteFile(path, []byte("stale contents"), 0o644))

	s, err := OpenFile(path, 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, make([]byte, 14), s.Bytes()[:14])
}

func TestClose_Idempotent(t *testing.T) {
	s, err := Anonymous(1024)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Sync(0, 1), ErrClosed)
}
