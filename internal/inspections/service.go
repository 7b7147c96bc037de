package inspections

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/internal/access"
	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
	"github.com/inspectai/inspectai-backend/pkg/pagination"
)

type repository interface {
	Create(ctx context.Context, inspection *models.Inspection) (*models.Inspection, error)
	Update(ctx context.Context, inspection *models.Inspection) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Inspection, int64, error)
	CollectMediaObjects(ctx context.Context, inspectionID uuid.UUID) (*MediaObjects, error)
}

type ownershipGuard interface {
	ResolveOwned(ctx context.Context, inspectionID, userID uuid.UUID) (*models.Inspection, error)
}

type objectStore interface {
	DeleteObject(ctx context.Context, bucket, object string) error
}

// Service exposes the owner-scoped inspection operations.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) ([]InspectionDTO, pagination.Meta, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateInspectionInput) (*InspectionDTO, error)
	Get(ctx context.Context, userID, inspectionID uuid.UUID) (*InspectionDTO, error)
	Update(ctx context.Context, userID, inspectionID uuid.UUID, input UpdateInspectionInput) (*InspectionDTO, error)
	Delete(ctx context.Context, userID, inspectionID uuid.UUID) error
}

// ServiceParams wires the dependencies for NewService.
type ServiceParams struct {
	Repo    repository
	Guard   ownershipGuard
	Storage objectStore
	Buckets config.GCSConfig
}

type service struct {
	repo    repository
	guard   ownershipGuard
	storage objectStore
	buckets config.GCSConfig
}

// NewService builds the inspection service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inspections repository required")
	}
	if params.Guard == nil {
		return nil, fmt.Errorf("ownership guard required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("object store required")
	}
	return &service{
		repo:    params.Repo,
		guard:   params.Guard,
		storage: params.Storage,
		buckets: params.Buckets,
	}, nil
}

var _ ownershipGuard = (*access.Guard)(nil)

func (s *service) List(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) ([]InspectionDTO, pagination.Meta, error) {
	if userID == uuid.Nil {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	items, total, err := s.repo.List(ctx, userID, filters, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inspections")
	}
	return FromModels(items), pagination.MetaFor(params, total), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInspectionInput) (*InspectionDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	inspection := &models.Inspection{
		UserID:       userID,
		Title:        strings.TrimSpace(input.Title),
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		ZipCode:      strings.TrimSpace(input.ZipCode),
		PropertyType: input.PropertyType,
		Status:       enums.InspectionStatusDraft,
		ScheduledAt:  input.ScheduledAt,
		Metadata:     input.Metadata,
	}

	created, err := s.repo.Create(ctx, inspection)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inspection")
	}
	return FromModel(created), nil
}

func (s *service) Get(ctx context.Context, userID, inspectionID uuid.UUID) (*InspectionDTO, error) {
	inspection, err := s.guard.ResolveOwned(ctx, inspectionID, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(inspection), nil
}

func (s *service) Update(ctx context.Context, userID, inspectionID uuid.UUID, input UpdateInspectionInput) (*InspectionDTO, error) {
	inspection, err := s.guard.ResolveOwned(ctx, inspectionID, userID)
	if err != nil {
		return nil, err
	}

	applyUpdate(inspection, input)

	if err := s.repo.Update(ctx, inspection); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inspection")
	}
	return FromModel(inspection), nil
}

// Delete sweeps every blob under the inspection before removing the row;
// child rows go with the row via the schema cascade.
func (s *service) Delete(ctx context.Context, userID, inspectionID uuid.UUID) error {
	inspection, err := s.guard.ResolveOwned(ctx, inspectionID, userID)
	if err != nil {
		return err
	}

	objects, err := s.repo.CollectMediaObjects(ctx, inspection.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "collect inspection media")
	}
	if err := s.sweepObjects(ctx, objects); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, inspection.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inspection")
	}
	return nil
}

func (s *service) sweepObjects(ctx context.Context, objects *MediaObjects) error {
	if objects == nil {
		return nil
	}
	for _, object := range objects.PhotoPaths {
		if err := s.storage.DeleteObject(ctx, s.buckets.PhotosBucket, object); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete photo object")
		}
	}
	for _, object := range objects.ThumbnailPaths {
		if err := s.storage.DeleteObject(ctx, s.buckets.ThumbnailsBucket, object); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete thumbnail object")
		}
	}
	for _, object := range objects.VoiceNotePaths {
		if err := s.storage.DeleteObject(ctx, s.buckets.VoiceNotesBucket, object); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete voice note object")
		}
	}
	return nil
}

// validateCreateInput reports the first missing field by its wire name.
func validateCreateInput(input CreateInspectionInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"address", input.Address},
		{"city", input.City},
		{"state", input.State},
		{"zipCode", input.ZipCode},
		{"propertyType", string(input.PropertyType)},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: "+field.name)
		}
	}
	if !input.PropertyType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid property type")
	}
	return nil
}

func applyUpdate(inspection *models.Inspection, input UpdateInspectionInput) {
	if input.Title != nil {
		inspection.Title = strings.TrimSpace(*input.Title)
	}
	if input.Address != nil {
		inspection.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		inspection.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		inspection.State = strings.TrimSpace(*input.State)
	}
	if input.ZipCode != nil {
		inspection.ZipCode = strings.TrimSpace(*input.ZipCode)
	}
	if input.PropertyType != nil {
		inspection.PropertyType = *input.PropertyType
	}
	if input.Status != nil {
		inspection.Status = *input.Status
	}
	if input.ScheduledAt != nil {
		inspection.ScheduledAt = input.ScheduledAt
	}
	if input.CompletedAt != nil {
		inspection.CompletedAt = input.CompletedAt
	}
	if input.Metadata != nil {
		inspection.Metadata = input.Metadata
	}
}
