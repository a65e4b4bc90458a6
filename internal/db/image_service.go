package db

import (
	"fmt"

	"github.com/cmbp/sitedeck/internal/models"
)

// SaveImageRecord stores an uploaded image's URL against its task identifier
func SaveImageRecord(taskIdentifier, imageURL string) (*models.ImageRecord, error) {
	record := models.ImageRecord{
		TaskIdentifier: taskIdentifier,
		ImageURL:       imageURL,
	}

	if err := DB.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save image record: %w", err)
	}

	return &record, nil
}

// ImagesForTask returns the stored images for one task, oldest first
func ImagesForTask(taskIdentifier string) ([]models.ImageRecord, error) {
	var records []models.ImageRecord
	if err := DB.Where("task_identifier = ?", taskIdentifier).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load images for %q: %w", taskIdentifier, err)
	}
	return records, nil
}

// CountImages returns the total number of stored image records
func CountImages() (int64, error) {
	var count int64
	if err := DB.Model(&models.ImageRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count image records: %w", err)
	}
	return count, nil
}
