package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/collegeconnect/collegeconnect/internal/pkg/logger"
)

// Upload size caps, enforced by the controllers before saving.
const (
	// MaxLogoSize caps college logo uploads (images only).
	MaxLogoSize = 5 << 20
	// MaxResourceSize caps general resource uploads (any MIME type).
	MaxResourceSize = 20 << 20
)

// IsImage reports whether an uploaded file declares an image MIME type.
// Logo uploads are rejected when this is false.
func IsImage(fileHeader *multipart.FileHeader) bool {
	if fileHeader == nil {
		return false
	}
	return strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/")
}

// PublicPrefix is the URL path prefix under which stored files are served.
const PublicPrefix = "/uploads/"

// DefaultLogoPath is the placeholder used when a college has no logo.
const DefaultLogoPath = PublicPrefix + "default_college_logo.png"

// LocalStorage saves uploaded files to the local filesystem. Stored paths
// are recorded in the database as "/uploads/<server-generated name>"; the
// server-generated name is collision-resistant while the caller's original
// filename is kept separately for download headers.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// SaveFile writes an uploaded file under a uuid-based name and returns the
// stored public path.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	storedName := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Msg("File saved")
	return PublicPrefix + storedName, nil
}

// DeleteFile removes a stored file. Missing files are treated as already
// deleted so the operation stays idempotent.
func (ls *LocalStorage) DeleteFile(storedPath string) error {
	if storedPath == "" || storedPath == DefaultLogoPath {
		return nil
	}

	physicalPath := ls.ResolvePath(storedPath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", storedPath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ResolvePath maps a stored public path back to the physical location on
// disk. Returns "" for paths that do not name a file.
func (ls *LocalStorage) ResolvePath(storedPath string) string {
	filename := filepath.Base(strings.TrimSuffix(storedPath, "/"))
	if filename == "" || filename == "." || filename == "/" || filename == "uploads" {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}

// Exists reports whether the backing file for a stored path is present.
func (ls *LocalStorage) Exists(storedPath string) bool {
	physicalPath := ls.ResolvePath(storedPath)
	if physicalPath == "" {
		return false
	}
	_, err := os.Stat(physicalPath)
	return err == nil
}
