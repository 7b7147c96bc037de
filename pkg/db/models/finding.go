package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// Finding is a recorded defect. It may point at the photo or voice note
// that prompted it, but neither link is required.
type Finding struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InspectionID  uuid.UUID             `gorm:"column:inspection_id;type:uuid;not null;index"`
	PhotoID       *uuid.UUID            `gorm:"column:photo_id;type:uuid"`
	VoiceNoteID   *uuid.UUID            `gorm:"column:voice_note_id;type:uuid"`
	Title         string                `gorm:"column:title;not null"`
	Description   string                `gorm:"column:description;not null"`
	Category      enums.FindingCategory `gorm:"column:category;type:finding_category;not null"`
	Severity      enums.Severity        `gorm:"column:severity;type:severity;not null"`
	Location      *string               `gorm:"column:location"`
	CostEstimate  *decimal.Decimal      `gorm:"column:cost_estimate;type:numeric(12,2)"`
	CostMin       *decimal.Decimal      `gorm:"column:cost_min;type:numeric(12,2)"`
	CostMax       *decimal.Decimal      `gorm:"column:cost_max;type:numeric(12,2)"`
	Status        enums.FindingStatus   `gorm:"column:status;type:finding_status;not null;default:active"`
	IsAIGenerated bool                  `gorm:"column:is_ai_generated;not null;default:false"`
	Confidence    *float64              `gorm:"column:confidence;type:numeric(4,3)"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
