// internal/media/local.go
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

// URLPrefix is the relative path prefix returned for stored files and the route they are
// served under.
const URLPrefix = "uploads"

// LocalStorage writes uploads to a directory on disk.
type LocalStorage struct {
	Dir string
}

// NewLocalStorage ensures dir exists.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		customLog.Warnf("Media: Error creating uploads directory '%s': %v", dir, err)
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{Dir: dir}, nil
}

// Save writes data under a random name and returns "uploads/<name>.<ext>".
func (s *LocalStorage) Save(_ context.Context, data []byte, ext string) (string, error) {
	name := uuid.New().String() + "." + ext
	dst := filepath.Join(s.Dir, name)

	// Write to a temp file first so a failed write never leaves a truncated image behind.
	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		customLog.Warnf("Media: Cannot create temp file in '%s': %v", s.Dir, err)
		return "", fmt.Errorf("%w: cannot save file", domain.ErrStorage)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		customLog.Warnf("Media: Failed to write upload: %v", err)
		return "", fmt.Errorf("%w: cannot save file", domain.ErrStorage)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: cannot save file", domain.ErrStorage)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		customLog.Warnf("Media: Failed to move upload into place: %v", err)
		return "", fmt.Errorf("%w: cannot save file", domain.ErrStorage)
	}

	return path.Join(URLPrefix, name), nil
}

// Delete removes a file previously returned by Save. Missing files are not an error.
func (s *LocalStorage) Delete(_ context.Context, relPath string) error {
	name, ok := localName(relPath)
	if !ok {
		return fmt.Errorf("%w: refusing to delete '%s'", domain.ErrStorage, relPath)
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return nil
}

// localName accepts only "uploads/<file>" with no further path segments.
func localName(relPath string) (string, bool) {
	name, found := strings.CutPrefix(relPath, URLPrefix+"/")
	if !found || name == "" || strings.ContainsAny(name, `/\`) || name == ".." || name == "." {
		return "", false
	}
	return name, true
}
