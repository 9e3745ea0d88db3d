package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
)

// LocalStorage stores files on the local filesystem and serves them under
// baseURL/uploads/...
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a local file storage rooted at basePath
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SaveFile stores an uploaded file under basePath/subDir with a generated
// unique name and returns its public URL
func (s *LocalStorage) SaveFile(file *multipart.FileHeader, subDir string) (string, error) {
	dir := filepath.Join(s.basePath, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext
	dstPath := filepath.Join(dir, filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	url := fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, subDir, filename)
	logger.Debug().Str("path", dstPath).Str("url", url).Msg("File stored")

	return url, nil
}

// DeleteFile removes a stored file given its public URL. Unknown URLs are
// ignored so repeated deletes stay safe.
func (s *LocalStorage) DeleteFile(fileURL string) error {
	marker := "/uploads/"
	idx := strings.Index(fileURL, marker)
	if idx < 0 {
		return nil
	}

	relPath := fileURL[idx+len(marker):]
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relPath))

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
