// Package images coordinates task photo uploads. Each file is uploaded
// first and recorded in the database only after the upload succeeds, so the
// gallery never lists an image that is not actually stored.
package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmbp/sitedeck/internal/db"
	"github.com/cmbp/sitedeck/internal/models"
	"github.com/cmbp/sitedeck/internal/storage"
)

// Service uploads task images and keeps their records.
type Service struct {
	uploader storage.Uploader
}

// NewService wraps an uploader. A nil uploader is allowed: the gallery keeps
// working and uploads fail with storage.ErrNotConfigured.
func NewService(uploader storage.Uploader) *Service {
	return &Service{uploader: uploader}
}

// UploadResult reports one file's outcome. URL is set on success, Err on
// failure.
type UploadResult struct {
	Filename string
	URL      string
	Err      error
}

// UploadForTask uploads the given files for one task. A failing file is
// reported in its result and the rest of the batch still runs.
func (s *Service) UploadForTask(ctx context.Context, taskIdentifier string, paths []string) []UploadResult {
	results := make([]UploadResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, s.uploadOne(ctx, taskIdentifier, path))
	}
	return results
}

func (s *Service) uploadOne(ctx context.Context, taskIdentifier, path string) UploadResult {
	name := filepath.Base(path)
	result := UploadResult{Filename: name}

	if s.uploader == nil {
		result.Err = storage.ErrNotConfigured
		return result
	}

	if !storage.AllowedImage(name) {
		result.Err = fmt.Errorf("unsupported file type %q (use png, jpg or jpeg)", filepath.Ext(name))
		return result
	}

	f, err := os.Open(path)
	if err != nil {
		result.Err = fmt.Errorf("failed to open %s: %w", path, err)
		return result
	}
	defer f.Close()

	key := storage.ObjectKey(taskIdentifier, name)
	url, err := s.uploader.Upload(ctx, key, storage.ContentTypeFor(name), f)
	if err != nil {
		result.Err = err
		return result
	}

	if _, err := db.SaveImageRecord(taskIdentifier, url); err != nil {
		result.Err = fmt.Errorf("uploaded %s but failed to record it: %w", name, err)
		return result
	}

	result.URL = url
	return result
}

// Gallery returns the stored images for one task, oldest first.
func (s *Service) Gallery(taskIdentifier string) ([]models.ImageRecord, error) {
	return db.ImagesForTask(taskIdentifier)
}
