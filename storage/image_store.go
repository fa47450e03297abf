package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists uploaded item images and removes them when their item
// is replaced or deleted.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(imageURL string) error
}

// LocalImageStore writes images to a directory on disk. Stored files are
// expected to be served statically under urlPrefix.
type LocalImageStore struct {
	dir       string
	urlPrefix string
}

func NewLocalImageStore(dir, urlPrefix string) *LocalImageStore {
	return &LocalImageStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// Save stores the upload under a generated name, keeping the original
// extension, and returns the URL path it will be served from.
func (s *LocalImageStore) Save(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Remove deletes a previously stored image by its URL path. A missing file is
// not an error.
func (s *LocalImageStore) Remove(imageURL string) error {
	if imageURL == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(imageURL)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
