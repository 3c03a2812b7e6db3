package filestorage

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/logger"
)

// LocalStorage saves files to the local filesystem under a base directory.
// Stored names are timestamp-prefixed with a random suffix, so concurrent
// writes of distinct uploads never collide.
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

// ValidateUpload checks an uploaded file against the MIME whitelist and the
// size cap before anything touches disk.
func ValidateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewCustomError(apperrors.ErrInvalidFile, "file is required")
	}
	if fileHeader.Size > MaxFileSize {
		return apperrors.NewCustomError(apperrors.ErrInvalidFile,
			fmt.Sprintf("file exceeds the %dMB limit", MaxFileSize>>20))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	if _, ok := AllowedMimeTypes[contentType]; !ok {
		return apperrors.NewCustomError(apperrors.ErrInvalidFile,
			"file type must be PDF, DOC, or DOCX")
	}
	return nil
}

// SaveFile validates the upload and writes it to disk, returning the stored
// filename.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if err := ValidateUpload(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	storedName := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), ext)
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

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Msg("File saved successfully")
	return storedName, nil
}

// GetFile reads a stored file and reports its MIME type from the extension.
func (ls *LocalStorage) GetFile(fileName string) ([]byte, string, error) {
	physicalPath, err := ls.resolve(fileName)
	if err != nil {
		return nil, "", err
	}

	content, err := os.ReadFile(physicalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperrors.ErrResumeNotFound
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to read file")
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	mimeType := "application/octet-stream"
	ext := strings.ToLower(filepath.Ext(fileName))
	for mt, allowedExt := range AllowedMimeTypes {
		if allowedExt == ext {
			mimeType = mt
			break
		}
	}

	return content, mimeType, nil
}

// DeleteFile removes a file from storage. Deleting a missing file is treated
// as success so the operation stays idempotent.
func (ls *LocalStorage) DeleteFile(fileName string) error {
	if fileName == "" {
		return nil
	}

	physicalPath, err := ls.resolve(fileName)
	if err != nil {
		return err
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

// resolve maps a stored filename to its physical path, rejecting anything
// that would escape the base directory.
func (ls *LocalStorage) resolve(fileName string) (string, error) {
	base := filepath.Base(fileName)
	if base == "" || base == "." || base == ".." || base == "/" || base != fileName {
		return "", fmt.Errorf("invalid file name: %s", fileName)
	}
	return filepath.Join(ls.basePath, base), nil
}
