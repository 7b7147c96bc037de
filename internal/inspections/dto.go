package inspections

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	dbtypes "github.com/inspectai/inspectai-backend/pkg/db/types"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

// CreateInspectionInput carries the fields accepted on create. Status is
// never client-settable: new inspections always start as drafts.
type CreateInspectionInput struct {
	Title        string             `json:"title"`
	Address      string             `json:"address"`
	City         string             `json:"city"`
	State        string             `json:"state"`
	ZipCode      string             `json:"zipCode"`
	PropertyType enums.PropertyType `json:"propertyType"`
	ScheduledAt  *time.Time         `json:"scheduledAt"`
	Metadata     map[string]any     `json:"metadata"`
}

// UpdateInspectionInput carries the patchable fields; only fields present
// in the request body are applied.
type UpdateInspectionInput struct {
	Title        *string                 `json:"title"`
	Address      *string                 `json:"address"`
	City         *string                 `json:"city"`
	State        *string                 `json:"state"`
	ZipCode      *string                 `json:"zipCode"`
	PropertyType *enums.PropertyType     `json:"propertyType"`
	Status       *enums.InspectionStatus `json:"status"`
	ScheduledAt  *time.Time              `json:"scheduledAt"`
	CompletedAt  *time.Time              `json:"completedAt"`
	Metadata     map[string]any          `json:"metadata"`
}

// ListFilters narrows the owner-scoped listing.
type ListFilters struct {
	Status       *enums.InspectionStatus
	PropertyType *enums.PropertyType
}

// ParseListFilters reads the supported filter knobs off the query string.
// Unknown values are rejected rather than silently ignored.
func ParseListFilters(values url.Values) (ListFilters, error) {
	var filters ListFilters
	if raw := values.Get("status"); raw != "" {
		status, err := enums.ParseInspectionStatus(raw)
		if err != nil {
			return ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid status filter")
		}
		filters.Status = &status
	}
	if raw := values.Get("propertyType"); raw != "" {
		propertyType, err := enums.ParsePropertyType(raw)
		if err != nil {
			return ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid property type filter")
		}
		filters.PropertyType = &propertyType
	}
	return filters, nil
}

// InspectionDTO is the transport shape for a single inspection.
type InspectionDTO struct {
	ID           uuid.UUID              `json:"id"`
	UserID       uuid.UUID              `json:"userId"`
	Title        string                 `json:"title"`
	Address      string                 `json:"address"`
	City         string                 `json:"city"`
	State        string                 `json:"state"`
	ZipCode      string                 `json:"zipCode"`
	PropertyType enums.PropertyType     `json:"propertyType"`
	Status       enums.InspectionStatus `json:"status"`
	ScheduledAt  *time.Time             `json:"scheduledAt,omitempty"`
	CompletedAt  *time.Time             `json:"completedAt,omitempty"`
	Metadata     dbtypes.JSONMap        `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func FromModel(i *models.Inspection) *InspectionDTO {
	if i == nil {
		return nil
	}
	return &InspectionDTO{
		ID:           i.ID,
		UserID:       i.UserID,
		Title:        i.Title,
		Address:      i.Address,
		City:         i.City,
		State:        i.State,
		ZipCode:      i.ZipCode,
		PropertyType: i.PropertyType,
		Status:       i.Status,
		ScheduledAt:  i.ScheduledAt,
		CompletedAt:  i.CompletedAt,
		Metadata:     i.Metadata,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func FromModels(items []models.Inspection) []InspectionDTO {
	dtos := make([]InspectionDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos
}
