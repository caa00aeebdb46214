package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrDirectoryNotFound = errors.New("directory not found")

// ListFiles returns every non-directory entry directly inside dir, in name
// order, so two calls on an unchanged directory agree. It does not recurse.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectoryNotFound, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
