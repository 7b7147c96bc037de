package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/inspectai/inspectai-backend/pkg/db/types"
	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// Inspection is the root of the ownership subtree: photos, voice notes,
// findings, and reports all inherit its user for authorization.
type Inspection struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Title        string                 `gorm:"column:title;not null"`
	Address      string                 `gorm:"column:address;not null"`
	City         string                 `gorm:"column:city;not null"`
	State        string                 `gorm:"column:state;not null"`
	ZipCode      string                 `gorm:"column:zip_code;not null"`
	PropertyType enums.PropertyType     `gorm:"column:property_type;type:property_type;not null"`
	Status       enums.InspectionStatus `gorm:"column:status;type:inspection_status;not null;default:draft"`
	ScheduledAt  *time.Time             `gorm:"column:scheduled_at"`
	CompletedAt  *time.Time             `gorm:"column:completed_at"`
	Metadata     dbtypes.JSONMap        `gorm:"column:metadata;type:jsonb"`
	Photos       []Photo                `gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	VoiceNotes   []VoiceNote            `gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	Findings     []Finding              `gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	Reports      []Report               `gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
