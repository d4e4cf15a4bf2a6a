package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "uploads"), filepath.Join(dir, "purchases"))
	require.NoError(t, err)
	return store
}

func TestFileStore_SaveAndRemoveUpload(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SaveUpload("1-chair.obj", strings.NewReader("obj data")))
	assert.True(t, store.UploadExists("1-chair.obj"))

	require.NoError(t, store.RemoveUpload("1-chair.obj"))
	assert.False(t, store.UploadExists("1-chair.obj"))

	// removing a missing file is not an error
	require.NoError(t, store.RemoveUpload("1-chair.obj"))
}

func TestFileStore_UploadPathIgnoresDirectoryTraversal(t *testing.T) {
	store := newStore(t)

	path := store.UploadPath("../../etc/passwd")
	assert.Equal(t, filepath.Join(store.UploadDir(), "passwd"), path)
}

func TestFileStore_Snapshot(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SaveUpload("1-chair.obj", strings.NewReader("obj data")))

	orderDir, err := store.Snapshot("alice", "1-chair.obj", 1700000000000)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.PurchaseDir(), "alice", "order_1700000000000"), orderDir)

	copied, err := os.ReadFile(filepath.Join(orderDir, "1-chair.obj"))
	require.NoError(t, err)
	assert.Equal(t, "obj data", string(copied))

	require.NoError(t, store.WriteOrderDetails(orderDir, 1700000000000, "Address: Main St 1\n"))

	entries, err := os.ReadDir(orderDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	details, err := os.ReadFile(filepath.Join(orderDir, "order_1700000000000_details.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(details), "Main St 1")

	require.NoError(t, store.RemoveOrderDir(orderDir))
	_, statErr := os.Stat(orderDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_SnapshotMissingSource(t *testing.T) {
	store := newStore(t)

	_, err := store.Snapshot("alice", "1-gone.obj", 1700000000000)
	require.Error(t, err)
}

func TestFileStore_SnapshotTwiceSameUser(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SaveUpload("1-chair.obj", strings.NewReader("obj data")))

	// user dir creation is idempotent, order dirs are distinct per timestamp
	first, err := store.Snapshot("alice", "1-chair.obj", 1)
	require.NoError(t, err)
	second, err := store.Snapshot("alice", "1-chair.obj", 2)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
