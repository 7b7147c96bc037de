package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// Report is an append-only generation record. StoragePath stays null
// until a PDF rendering step runs.
type Report struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InspectionID uuid.UUID        `gorm:"column:inspection_id;type:uuid;not null;index"`
	Type         enums.ReportType `gorm:"column:type;type:report_type;not null"`
	StoragePath  *string          `gorm:"column:storage_path"`
	Summary      string           `gorm:"column:summary;not null"`
	TotalCost    decimal.Decimal  `gorm:"column:total_cost;type:numeric(14,2);not null;default:0"`
	GeneratedAt  time.Time        `gorm:"column:generated_at;not null"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}
