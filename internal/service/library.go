package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/model"
	"print3d-shop/internal/repository"
	"print3d-shop/internal/storage"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type LibraryService interface {
	SaveUpload(ctx context.Context, username, originalName string, r io.Reader) (*dto.FileInfo, error)
	ListUploads(ctx context.Context, username string) ([]*dto.FileInfo, error)
}

type libraryServiceImpl struct {
	uploadRepo repository.UploadRepository
	files      *storage.FileStore
	baseURL    string
}

func NewLibraryService(
	uploadRepo repository.UploadRepository,
	files *storage.FileStore,
	baseURL string,
) LibraryService {
	return &libraryServiceImpl{
		uploadRepo: uploadRepo,
		files:      files,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (s *libraryServiceImpl) SaveUpload(ctx context.Context, username, originalName string, r io.Reader) (*dto.FileInfo, error) {
	filename := storedFilename(originalName)

	if err := s.files.SaveUpload(filename, r); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	upload := &model.Upload{
		Username: username,
		Filename: filename,
	}
	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		// registry insert failed, the stored file would be orphaned
		if rmErr := s.files.RemoveUpload(filename); rmErr != nil {
			logrus.WithError(rmErr).WithField("filename", filename).
				Error("failed to remove orphaned upload file")
		}
		return nil, fmt.Errorf("register upload: %w", err)
	}

	return &dto.FileInfo{
		Filename:   filename,
		URL:        s.fileURL(filename),
		UploadedAt: upload.CreatedAt,
	}, nil
}

func (s *libraryServiceImpl) ListUploads(ctx context.Context, username string) ([]*dto.FileInfo, error) {
	uploads, err := s.uploadRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	files := make([]*dto.FileInfo, 0, len(uploads))
	for _, u := range uploads {
		files = append(files, &dto.FileInfo{
			Filename:   u.Filename,
			URL:        s.fileURL(u.Filename),
			UploadedAt: u.CreatedAt,
		})
	}

	return files, nil
}

func (s *libraryServiceImpl) fileURL(filename string) string {
	return s.baseURL + "/uploads/" + filename
}

// storedFilename prefixes the client-supplied name with the current unix
// millisecond timestamp, which keeps names unique within the file store.
func storedFilename(originalName string) string {
	name := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
}
