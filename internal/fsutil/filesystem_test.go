package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fsys := OSFileSystem{}

	assert.True(t, fsys.Exists("filesystem.go"))
	assert.False(t, fsys.Exists("nonexistent_file_xyz.go"))
}

func TestOSFileSystem_CreateAndOpen(t *testing.T) {
	fsys := OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "plots", "run")
	require.NoError(t, fsys.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "grid.png")
	w, err := fsys.Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f, err := fsys.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestMemoryFileSystem_AddAndOpen(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("data/label_0_data.csv", []byte("1,2,2\n"))

	f, err := mfs.Open("data/label_0_data.csv")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "1,2,2\n", string(data))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "label_0_data.csv", info.Name())
	assert.EqualValues(t, 6, info.Size())
}

func TestMemoryFileSystem_OpenErrors(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Open("missing.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	mfs.AddFile("locked.csv", []byte("0,0,0\n"))
	mfs.Deny("locked.csv")
	_, err = mfs.Open("locked.csv")
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestMemoryFileSystem_CreateAndContents(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/out/created.png")
	require.NoError(t, err)
	_, err = w.Write([]byte("created content"))
	require.NoError(t, err)

	// Content becomes visible on Close.
	data, ok := mfs.Contents("/out/created.png")
	require.True(t, ok)
	assert.Empty(t, data)

	require.NoError(t, w.Close())
	data, ok = mfs.Contents("/out/created.png")
	require.True(t, ok)
	assert.Equal(t, "created content", string(data))
	assert.True(t, mfs.Exists("/out"))
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	mfs := NewMemoryFileSystem()
	require.NoError(t, mfs.MkdirAll("plots/a/b", os.ModePerm))

	assert.True(t, mfs.Exists("plots"))
	assert.True(t, mfs.Exists("plots/a"))
	assert.True(t, mfs.Exists("plots/a/b"))
	assert.False(t, mfs.Exists("plots/c"))
}
