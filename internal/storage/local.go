package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores uploads in a directory on disk
type Local struct {
	dir string
}

// NewLocal creates the upload directory if needed
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the upload directory
func (l *Local) Dir() string {
	return l.dir
}

// Save implements Store
func (l *Local) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	name, err := CleanName(name)
	if err != nil {
		return "", err
	}

	target := filepath.Join(l.dir, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	log.Debug("stored upload", "name", name, "size", size)
	return PublicPath(name), nil
}

// Open implements Store
func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(l.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}
