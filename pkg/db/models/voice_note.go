package models

import (
	"time"

	"github.com/google/uuid"
)

// VoiceNote is an uploaded audio memo. Transcript and summary are
// written by the analysis pipeline, never by request handlers.
type VoiceNote struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InspectionID uuid.UUID  `gorm:"column:inspection_id;type:uuid;not null;index"`
	StoragePath  string     `gorm:"column:storage_path;not null"`
	FileName     string     `gorm:"column:file_name;not null"`
	Duration     *float64   `gorm:"column:duration;type:numeric(8,2)"`
	Transcript   *string    `gorm:"column:transcript"`
	Summary      *string    `gorm:"column:summary"`
	ProcessedAt  *time.Time `gorm:"column:processed_at"`
	Error        *string    `gorm:"column:error"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
