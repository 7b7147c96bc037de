package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/inspectai/inspectai-backend/pkg/db/types"
	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// Photo is an uploaded inspection image. The ai_* columns are written
// by the analysis pipeline, never by request handlers.
type Photo struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InspectionID  uuid.UUID           `gorm:"column:inspection_id;type:uuid;not null;index"`
	StoragePath   string              `gorm:"column:storage_path;not null"`
	ThumbnailPath *string             `gorm:"column:thumbnail_path"`
	FileName      string              `gorm:"column:file_name;not null"`
	Category      enums.PhotoCategory `gorm:"column:category;type:photo_category;not null;default:other"`
	Location      *string             `gorm:"column:location"`
	Width         *int                `gorm:"column:width"`
	Height        *int                `gorm:"column:height"`
	AICaption     *string             `gorm:"column:ai_caption"`
	AIObjects     dbtypes.StringArray `gorm:"column:ai_objects;type:jsonb"`
	AICondition   *string             `gorm:"column:ai_condition"`
	AIConfidence  *float64            `gorm:"column:ai_confidence;type:numeric(4,3)"`
	ProcessedAt   *time.Time          `gorm:"column:processed_at"`
	Error         *string             `gorm:"column:error"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
