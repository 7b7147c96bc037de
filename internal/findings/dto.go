package findings

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

// CreateFindingInput carries the fields accepted on create. Status is
// never client-settable: new findings always start active.
type CreateFindingInput struct {
	InspectionID uuid.UUID             `json:"inspectionId"`
	PhotoID      *uuid.UUID            `json:"photoId"`
	VoiceNoteID  *uuid.UUID            `json:"voiceNoteId"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     enums.FindingCategory `json:"category"`
	Severity     enums.Severity        `json:"severity"`
	Location     *string               `json:"location"`
	CostEstimate *decimal.Decimal      `json:"costEstimate"`
	CostMin      *decimal.Decimal      `json:"costMin"`
	CostMax      *decimal.Decimal      `json:"costMax"`
}

// UpdateFindingInput carries the patchable fields; only fields present
// in the request body are applied.
type UpdateFindingInput struct {
	Title        *string                `json:"title"`
	Description  *string                `json:"description"`
	Category     *enums.FindingCategory `json:"category"`
	Severity     *enums.Severity        `json:"severity"`
	Location     *string                `json:"location"`
	CostEstimate *decimal.Decimal       `json:"costEstimate"`
	CostMin      *decimal.Decimal       `json:"costMin"`
	CostMax      *decimal.Decimal       `json:"costMax"`
	Status       *enums.FindingStatus   `json:"status"`
}

// ListFilters narrows a finding listing within one inspection.
type ListFilters struct {
	Severity *enums.Severity
	Category *enums.FindingCategory
}

// ParseListFilters reads the optional filter knobs off the query string.
func ParseListFilters(values url.Values) (ListFilters, error) {
	var filters ListFilters
	if raw := values.Get("severity"); raw != "" {
		severity, err := enums.ParseSeverity(raw)
		if err != nil {
			return ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid severity filter")
		}
		filters.Severity = &severity
	}
	if raw := values.Get("category"); raw != "" {
		category, err := enums.ParseFindingCategory(raw)
		if err != nil {
			return ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid category filter")
		}
		filters.Category = &category
	}
	return filters, nil
}

// FindingDTO is the transport shape for a finding. PhotoURL is a
// short-lived signed link to the source photo, minted per read.
type FindingDTO struct {
	ID            uuid.UUID             `json:"id"`
	InspectionID  uuid.UUID             `json:"inspectionId"`
	PhotoID       *uuid.UUID            `json:"photoId,omitempty"`
	VoiceNoteID   *uuid.UUID            `json:"voiceNoteId,omitempty"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Category      enums.FindingCategory `json:"category"`
	Severity      enums.Severity        `json:"severity"`
	Location      *string               `json:"location,omitempty"`
	CostEstimate  *decimal.Decimal      `json:"costEstimate,omitempty"`
	CostMin       *decimal.Decimal      `json:"costMin,omitempty"`
	CostMax       *decimal.Decimal      `json:"costMax,omitempty"`
	Status        enums.FindingStatus   `json:"status"`
	IsAIGenerated bool                  `json:"isAiGenerated"`
	Confidence    *float64              `json:"confidence,omitempty"`
	PhotoURL      string                `json:"photoUrl,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// SimilarFinding is one ranked entry in the similarity stub response.
type SimilarFinding struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}

func fromModel(f *models.Finding) *FindingDTO {
	if f == nil {
		return nil
	}
	return &FindingDTO{
		ID:            f.ID,
		InspectionID:  f.InspectionID,
		PhotoID:       f.PhotoID,
		VoiceNoteID:   f.VoiceNoteID,
		Title:         f.Title,
		Description:   f.Description,
		Category:      f.Category,
		Severity:      f.Severity,
		Location:      f.Location,
		CostEstimate:  f.CostEstimate,
		CostMin:       f.CostMin,
		CostMax:       f.CostMax,
		Status:        f.Status,
		IsAIGenerated: f.IsAIGenerated,
		Confidence:    f.Confidence,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
