package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// GenerateReportInput carries the generation request. Type arrives raw
// so an absent value can default while an unknown one is rejected.
type GenerateReportInput struct {
	InspectionID uuid.UUID `json:"inspectionId"`
	Type         string    `json:"type"`
}

// ReportDTO is the transport shape for a generated report.
type ReportDTO struct {
	ID           uuid.UUID        `json:"id"`
	InspectionID uuid.UUID        `json:"inspectionId"`
	Type         enums.ReportType `json:"type"`
	Summary      string           `json:"summary"`
	TotalCost    decimal.Decimal  `json:"totalCost"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// DownloadResponse is the body for a minted report download link.
type DownloadResponse struct {
	ReportID    uuid.UUID `json:"reportId"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	FileName    string    `json:"fileName"`
}

func fromModel(r *models.Report) *ReportDTO {
	if r == nil {
		return nil
	}
	return &ReportDTO{
		ID:           r.ID,
		InspectionID: r.InspectionID,
		Type:         r.Type,
		Summary:      r.Summary,
		TotalCost:    r.TotalCost,
		GeneratedAt:  r.GeneratedAt,
		CreatedAt:    r.CreatedAt,
	}
}
