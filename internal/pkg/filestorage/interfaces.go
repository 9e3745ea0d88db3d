package filestorage

import (
	"mime/multipart"
)

// FileStorage abstracts storing uploaded files and resolving public URLs
type FileStorage interface {
	// SaveFile stores an uploaded file under the given subdirectory and
	// returns its public URL
	SaveFile(file *multipart.FileHeader, subDir string) (string, error)

	// DeleteFile removes a previously stored file given its public URL
	DeleteFile(fileURL string) error
}
