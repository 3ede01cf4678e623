package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageStore persists uploaded images under a single directory, naming each
// file with a fresh UUID so uploads never collide or overwrite.
type ImageStore struct {
	dir string
	log *logger.Logger
}

func NewImageStore(dir string, log *logger.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "create upload directory", err)
	}
	return &ImageStore{dir: dir, log: log.WithComponent("image_store")}, nil
}

// Save writes the uploaded file and returns the generated filename.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", apperr.New(apperr.Invalid, "unsupported image format")
	}

	name := uuid.NewString() + ext
	src, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "open uploaded file", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "create image file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", apperr.Wrap(apperr.Internal, "write image file", err)
	}

	s.log.Info("Stored uploaded image", "filename", name, "size", fh.Size)
	return name, nil
}

// Remove deletes a stored image, best effort. A missing file is not an error.
func (s *ImageStore) Remove(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to remove image", "filename", name, "error", err)
	}
}
