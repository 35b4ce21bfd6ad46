package configfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// joinPath joins a candidate directory with the filename using a literal '/'
// on every platform. An empty directory yields the bare filename.
func joinPath(dir, filename string) string {
	if dir == "" {
		return filename
	}
	return dir + "/" + filename
}

// ensurePath makes sure the parent directories for a file path exist and that
// the path does not already exist as a directory.
func ensurePath(p string) error {
	info, err := os.Stat(p)
	switch {
	case err == nil:
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("create directories for %s: %w", p, err)
	}
	return nil
}

// writeFile writes data to path atomically: the content goes to a temp file
// in the same directory first, which is then renamed over path. A partially
// written temp file is never observable at path.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".configfile-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
