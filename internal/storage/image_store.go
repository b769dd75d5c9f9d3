// Package storage keeps uploaded profile images on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/petween/backend/internal/security"
	"github.com/petween/backend/pkg/errors"
	"github.com/petween/backend/pkg/logger"
	"github.com/petween/backend/pkg/utils"
)

// DefaultImageTypes are the extensions accepted for profile images.
var DefaultImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

const maxNameAttempts = 5

type ImageStore struct {
	dir          string
	maxSize      int64
	allowedTypes []string
}

func NewImageStore(dir string, maxSize int64, allowedTypes []string) *ImageStore {
	if len(allowedTypes) == 0 {
		allowedTypes = DefaultImageTypes
	}
	return &ImageStore{
		dir:          dir,
		maxSize:      maxSize,
		allowedTypes: allowedTypes,
	}
}

// Dir returns the directory images are written to.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes r under the sanitized filename and returns the stored
// path (dir joined with the final file name). A name with nothing usable
// before the extension gets a generated one. An existing file is never
// overwritten: on collision a random suffix is added before the
// extension.
func (s *ImageStore) Save(filename string, r io.Reader) (string, error) {
	stem, ext := security.SplitFilename(filename)
	if ext == "" || !security.ValidateFileType(ext, s.allowedTypes) {
		return "", errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("unsupported image type, allowed: %s", strings.Join(s.allowedTypes, ", ")))
	}
	if stem == "" {
		suffix, err := utils.RandomSuffix(8)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to generate image filename")
		}
		stem = "image-" + suffix
	}
	name := stem + ext

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to create upload directory")
	}

	f, path, err := s.create(name)
	if err != nil {
		return "", err
	}

	// Read one byte past the limit to detect oversize uploads.
	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to write image")
	}
	if !security.ValidateFileSize(written, s.maxSize) {
		os.Remove(path)
		return "", errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("image must be between 1 and %d bytes", s.maxSize))
	}

	logger.Debug("Stored image", "path", path, "bytes", written)
	return path, nil
}

// create opens a new file exclusively, trying suffixed names when the
// plain one is taken.
func (s *ImageStore) create(name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		path := filepath.Join(s.dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to create image file")
		}
		suffix, err := utils.RandomSuffix(8)
		if err != nil {
			return nil, "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to generate image filename")
		}
		candidate = fmt.Sprintf("%s-%s%s", stem, suffix, ext)
	}

	return nil, "", errors.New(errors.ErrCodeInternalError, "could not find a free image filename")
}
