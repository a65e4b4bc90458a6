package models

import (
	"time"
)

// ImageRecord associates an uploaded photo with a task identifier. The image
// bytes live in object storage; only the public URL is recorded here. Records
// are created on successful upload and never updated or deleted.
type ImageRecord struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	TaskIdentifier string    `gorm:"index;not null" json:"task_identifier"`
	ImageURL       string    `gorm:"not null" json:"image_url"`
	UploadedAt     time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// TableName overrides gorm's default pluralization.
func (ImageRecord) TableName() string {
	return "images"
}
