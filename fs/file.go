// Package fs writes export output to disk.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/c2cgpx"
)

// File is an output file with atomic replace semantics.
// Bytes go to path.tmp, which is renamed over path on Commit.
type File struct {
	path string
	f    *os.File
	size int
}

// Create opens the temporary file for path, creating parent directories.
func Create(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path+".tmp", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	return &File{path: path, f: f}, nil
}

func (f *File) tempPath() string {
	return f.path + ".tmp"
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	n, err := f.f.Write(p)
	f.size += n
	return n, err
}

// Size returns the number of bytes written so far.
func (f *File) Size() int {
	return f.size
}

// Commit closes the file and moves it into place, replacing any previous
// file at path.
func (f *File) Commit() error {
	if err := f.f.Close(); err != nil {
		_ = os.Remove(f.tempPath())
		return err
	}
	return os.Rename(f.tempPath(), f.path)
}

// Abort closes and removes the temporary file. The file at path, if any,
// is left untouched.
func (f *File) Abort() error {
	_ = f.f.Close()
	if err := os.Remove(f.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WriteWaypoints writes wps to path with w. It returns the number of
// waypoints and bytes written. Nothing is left at path on failure.
func WriteWaypoints(path string, w c2cgpx.WaypointWriter, wps []*c2cgpx.Waypoint) (n, size int, err error) {
	f, err := Create(path)
	if err != nil {
		return 0, 0, fmt.Errorf("create output: %w", err)
	}

	n, err = w.WriteWaypoints(f, wps)
	if err != nil {
		_ = f.Abort()
		return 0, 0, err
	}
	if err := f.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit output: %w", err)
	}
	return n, f.Size(), nil
}
