package filestorage

import (
	"mime/multipart"
)

// MaxFileSize is the upload cap for resumes and project files (5MB).
const MaxFileSize = 5 << 20

// AllowedMimeTypes whitelists upload content types: PDF, DOC, DOCX.
var AllowedMimeTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile validates and saves an uploaded file, returning the stored filename.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// GetFile retrieves a stored file's content and MIME type.
	GetFile(fileName string) ([]byte, string, error)

	// DeleteFile removes a file from storage.
	DeleteFile(fileName string) error
}
