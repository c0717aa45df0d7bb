// Package storage persists uploaded files and returns the public path that is
// written into the owning row (avatars, site icon).
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"mapadmin/internal/errors"
)

// Store saves a file under dir and returns the path clients use to fetch it.
type Store interface {
	Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the file behind a path returned by Save. Removing a missing file is not an error.
	Remove(ctx context.Context, publicPath string) error
}

// imageExtensions maps the sniffed content type of an accepted image to the
// extension it is stored under. SVG is not accepted since it can carry script.
var imageExtensions = map[string]string{
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/gif":                ".gif",
	"image/webp":               ".webp",
	"image/x-icon":             ".ico",
	"image/vnd.microsoft.icon": ".ico",
}

// NewFilename returns "<unix-millis>-<uuid><ext>".
func NewFilename(ext string, now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), ext)
}

// Uploader validates multipart images and hands them to a Store.
type Uploader struct {
	store    Store
	maxBytes int64
	now      func() time.Time
}

// NewUploader wraps store; maxBytes <= 0 disables the size check.
func NewUploader(store Store, maxBytes int64) *Uploader {
	return &Uploader{store: store, maxBytes: maxBytes, now: time.Now}
}

// SaveImage stores an uploaded image under dir and returns its public path.
func (u *Uploader) SaveImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", errors.ErrNoFile
	}
	if u.maxBytes > 0 && fh.Size > u.maxBytes {
		return "", errors.Invalid("file %q exceeds the %d byte upload limit", fh.Filename, u.maxBytes)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// The part's Content-Type header and filename are client supplied; the
	// stored type and extension come from the file contents only.
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(detected.String(), ";")[0]))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", errors.Invalid("file %q is not a supported image type", fh.Filename)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	return u.store.Save(ctx, dir, NewFilename(ext, u.now()), src, fh.Size, contentType)
}

// RemoveImage deletes an image stored by SaveImage.
func (u *Uploader) RemoveImage(ctx context.Context, publicPath string) error {
	if publicPath == "" {
		return nil
	}
	return u.store.Remove(ctx, publicPath)
}
