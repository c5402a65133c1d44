package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/c2cgpx"
	"github.com/fwojciec/c2cgpx/fs"
	"github.com/fwojciec/c2cgpx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Output
// The export is written to a temporary file and moved into place on commit

func TestFile_WriteGoesToTempFile(t *testing.T) {
	t.Parallel()

	// Given an output file
	path := filepath.Join(t.TempDir(), "routes.gpx")
	f, err := fs.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Abort() })

	// When I write to it
	n, err := io.WriteString(f, "<gpx/>")

	// Then the bytes are counted
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, 6, f.Size())

	// And only the temporary file exists
	assert.FileExists(t, path+".tmp")
	assert.NoFileExists(t, path)
}

func TestFile_CommitReplacesExistingFile(t *testing.T) {
	t.Parallel()

	// Given a previous export
	path := filepath.Join(t.TempDir(), "routes.gpx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// When I write and commit a new one
	f, err := fs.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(f, "new")
	require.NoError(t, err)
	err = f.Commit()

	// Then the file holds the new content
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// And the temporary file is gone
	assert.NoFileExists(t, path+".tmp")
}

func TestFile_AbortKeepsExistingFile(t *testing.T) {
	t.Parallel()

	// Given a previous export
	path := filepath.Join(t.TempDir(), "routes.gpx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// When a new export is aborted
	f, err := fs.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(f, "partial")
	require.NoError(t, err)
	err = f.Abort()

	// Then the previous export is untouched
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.NoFileExists(t, path+".tmp")
}

func TestCreate_MakesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exports", "2024", "routes.gpx")

	f, err := fs.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Commit())

	assert.FileExists(t, path)
}

func TestWriteWaypoints(t *testing.T) {
	t.Parallel()

	t.Run("returns waypoint and byte counts", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "routes.gpx")
		w := &mock.WaypointWriter{
			WriteWaypointsFn: func(w io.Writer, wps []*c2cgpx.Waypoint) (int, error) {
				_, err := io.WriteString(w, "<gpx></gpx>")
				return len(wps), err
			},
		}

		n, size, err := fs.WriteWaypoints(path, w, []*c2cgpx.Waypoint{{DocumentID: 1}, {DocumentID: 2}})

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 11, size)
		assert.FileExists(t, path)
	})

	t.Run("writer failure leaves nothing behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := &mock.WaypointWriter{
			WriteWaypointsFn: func(w io.Writer, _ []*c2cgpx.Waypoint) (int, error) {
				_, _ = io.WriteString(w, "<gpx>")
				return 0, errors.New("disk full")
			},
		}

		_, _, err := fs.WriteWaypoints(filepath.Join(dir, "routes.gpx"), w, nil)

		require.EqualError(t, err, "disk full")
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
