package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDisk(t *testing.T) (*Disk, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")
	d, err := NewDisk(root, "/uploads")
	require.NoError(t, err)
	return d, root
}

func TestNewDisk_CreatesRootIdempotently(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")

	_, err := NewDisk(root, "/uploads")
	require.NoError(t, err)

	// Second call with the root already present must not fail.
	_, err = NewDisk(root, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDisk_SaveOpenRoundTrip(t *testing.T) {
	d, _ := newTestDisk(t)
	ctx := context.Background()
	payload := []byte("\x89PNG fake image bytes")

	err := d.Save(ctx, "a.png", bytes.NewReader(payload), int64(len(payload)), "image/png")
	require.NoError(t, err)

	rc, err := d.Open(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDisk_SaveRefusesExistingKey(t *testing.T) {
	d, _ := newTestDisk(t)
	ctx := context.Background()

	require.NoError(t, d.Save(ctx, "a.png", bytes.NewReader([]byte("one")), 3, "image/png"))

	err := d.Save(ctx, "a.png", bytes.NewReader([]byte("two")), 3, "image/png")
	require.ErrorIs(t, err, ErrKeyExists)

	// Original bytes survive the refused overwrite.
	rc, err := d.Open(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), got)
}

func TestDisk_SaveRejectsDeclaredSizeMismatch(t *testing.T) {
	d, root := newTestDisk(t)

	err := d.Save(context.Background(), "a.png", bytes.NewReader([]byte("abc")), 999, "image/png")
	require.Error(t, err)

	// Nothing committed, nothing staged.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDisk_SaveLeavesNoStagingFiles(t *testing.T) {
	d, root := newTestDisk(t)

	require.NoError(t, d.Save(context.Background(), "a.png", bytes.NewReader([]byte("abc")), 3, "image/png"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.png", entries[0].Name())
}

func TestDisk_OpenMissingKey(t *testing.T) {
	d, _ := newTestDisk(t)

	_, err := d.Open(context.Background(), "never-written.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDisk_OpenNeverEscapesRoot(t *testing.T) {
	d, root := newTestDisk(t)

	// Plant a file outside the root that an escape would reach.
	secret := filepath.Join(filepath.Dir(root), "secret")
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0o644))

	for _, key := range []string{"../secret", "..", ".", "", "/etc/passwd", "a/../../secret"} {
		_, err := d.Open(context.Background(), key)
		assert.ErrorIs(t, err, ErrNotFound, "%q", key)
	}
}

func TestDisk_RemoveIsIdempotent(t *testing.T) {
	d, _ := newTestDisk(t)
	ctx := context.Background()

	require.NoError(t, d.Save(ctx, "a.png", bytes.NewReader([]byte("abc")), 3, "image/png"))
	require.NoError(t, d.Remove(ctx, "a.png"))

	_, err := d.Open(ctx, "a.png")
	require.ErrorIs(t, err, ErrNotFound)

	// Removing again is not an error, so rollback can be retried.
	assert.NoError(t, d.Remove(ctx, "a.png"))
}

func TestDisk_PublicURL(t *testing.T) {
	d, err := NewDisk(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/a.png", d.PublicURL("a.png"))
}
