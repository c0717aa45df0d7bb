package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL prefix under which the local upload directory is served.
const PublicPrefix = "/uploads"

// Local writes uploads below a directory on disk.
type Local struct {
	root string
}

// NewLocal creates root if needed.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{root: root}, nil
}

// Root is the directory served at PublicPrefix.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir = filepath.Base(filepath.Clean("/" + dir))
	filename = filepath.Base(filename)

	target := filepath.Join(l.root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(target, filename))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path.Join(PublicPrefix, dir, filename), nil
}

func (l *Local) Remove(ctx context.Context, publicPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel := strings.TrimPrefix(publicPath, PublicPrefix+"/")
	if rel == publicPath {
		return fmt.Errorf("path %q is not below %s", publicPath, PublicPrefix)
	}
	dir, filename := path.Split(path.Clean("/" + rel))
	dir = filepath.Base(filepath.Clean("/" + dir))
	if err := os.Remove(filepath.Join(l.root, dir, filepath.Base(filename))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
