// Package fsys is the filesystem collaborator of the document store:
// whole-file reads and bounded, non-recursive directory listings. The
// interface exists so store and loader tests can run on a fake.
package fsys

import (
	"os"
	"path/filepath"
)

// FS is the filesystem surface the document store consumes.
type FS interface {
	// ReadFile reads the whole file at path.
	ReadFile(path string) ([]byte, error)

	// ListDir returns full paths of at most maxEntries regular files
	// directly inside dir. It does not recurse.
	ListDir(path string, maxEntries int) ([]string, error)
}

// OS is the real-filesystem implementation.
type OS struct{}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) ListDir(path string, maxEntries int) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if len(files) == maxEntries {
			break
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	return files, nil
}
