package findings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type repository interface {
	Create(ctx context.Context, finding *models.Finding) (*models.Finding, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Finding, error)
	ListByInspection(ctx context.Context, inspectionID uuid.UUID, filters ListFilters) ([]models.Finding, error)
	Update(ctx context.Context, finding *models.Finding) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type photosRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
}

type ownershipGuard interface {
	ResolveOwned(ctx context.Context, inspectionID, userID uuid.UUID) (*models.Inspection, error)
}

type urlMinter interface {
	SignedReadURL(bucket, object string, ttl time.Duration) (string, error)
}

// Service exposes the finding operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateFindingInput) (*FindingDTO, error)
	ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID, filters ListFilters) ([]FindingDTO, error)
	Get(ctx context.Context, userID, findingID uuid.UUID) (*FindingDTO, error)
	Update(ctx context.Context, userID, findingID uuid.UUID, input UpdateFindingInput) (*FindingDTO, error)
	Delete(ctx context.Context, userID, findingID uuid.UUID) error
	Similar(ctx context.Context, userID, findingID uuid.UUID) ([]SimilarFinding, error)
}

// ServiceParams wires the dependencies for NewService.
type ServiceParams struct {
	Repo    repository
	Photos  photosRepository
	Guard   ownershipGuard
	Storage urlMinter
	Buckets config.GCSConfig
	Logger  zerolog.Logger
}

type service struct {
	repo    repository
	photos  photosRepository
	guard   ownershipGuard
	storage urlMinter
	buckets config.GCSConfig
	logger  zerolog.Logger
}

// NewService builds the finding service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("findings repository required")
	}
	if params.Photos == nil {
		return nil, fmt.Errorf("photos repository required")
	}
	if params.Guard == nil {
		return nil, fmt.Errorf("ownership guard required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("url minter required")
	}
	return &service{
		repo:    params.Repo,
		photos:  params.Photos,
		guard:   params.Guard,
		storage: params.Storage,
		buckets: params.Buckets,
		logger:  params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateFindingInput) (*FindingDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.guard.ResolveOwned(ctx, input.InspectionID, userID); err != nil {
		return nil, err
	}

	finding := &models.Finding{
		InspectionID: input.InspectionID,
		PhotoID:      input.PhotoID,
		VoiceNoteID:  input.VoiceNoteID,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Category:     input.Category,
		Severity:     input.Severity,
		Location:     input.Location,
		CostEstimate: input.CostEstimate,
		CostMin:      input.CostMin,
		CostMax:      input.CostMax,
		Status:       enums.FindingStatusActive,
	}
	created, err := s.repo.Create(ctx, finding)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create finding")
	}
	return s.toDTO(ctx, created), nil
}

func (s *service) ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID, filters ListFilters) ([]FindingDTO, error) {
	if _, err := s.guard.ResolveOwned(ctx, inspectionID, userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByInspection(ctx, inspectionID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list findings")
	}

	dtos := make([]FindingDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *s.toDTO(ctx, &items[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, userID, findingID uuid.UUID) (*FindingDTO, error) {
	finding, err := s.resolveOwned(ctx, userID, findingID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, finding), nil
}

func (s *service) Update(ctx context.Context, userID, findingID uuid.UUID, input UpdateFindingInput) (*FindingDTO, error) {
	finding, err := s.resolveOwned(ctx, userID, findingID)
	if err != nil {
		return nil, err
	}

	applyUpdate(finding, input)

	if err := s.repo.Update(ctx, finding); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update finding")
	}
	return s.toDTO(ctx, finding), nil
}

func (s *service) Delete(ctx context.Context, userID, findingID uuid.UUID) error {
	finding, err := s.resolveOwned(ctx, userID, findingID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, finding.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete finding")
	}
	return nil
}

// Similar returns a fixed ranked list. Embedding-backed search is an
// external collaborator that is not built yet; only the contract is
// fixed: input id, output ranked entries with a score in [0,1].
func (s *service) Similar(ctx context.Context, userID, findingID uuid.UUID) ([]SimilarFinding, error) {
	finding, err := s.resolveOwned(ctx, userID, findingID)
	if err != nil {
		return nil, err
	}
	return []SimilarFinding{
		{Title: "Similar " + finding.Category.String() + " issue reported nearby", Category: finding.Category.String(), Similarity: 0.94},
		{Title: "Comparable defect in same property class", Category: finding.Category.String(), Similarity: 0.89},
		{Title: "Related maintenance finding", Category: finding.Category.String(), Similarity: 0.85},
	}, nil
}

func (s *service) resolveOwned(ctx context.Context, userID, findingID uuid.UUID) (*models.Finding, error) {
	if findingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Finding not found")
	}
	finding, err := s.repo.FindByID(ctx, findingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Finding not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load finding")
	}
	if _, err := s.guard.ResolveOwned(ctx, finding.InspectionID, userID); err != nil {
		return nil, err
	}
	return finding, nil
}

func (s *service) toDTO(ctx context.Context, finding *models.Finding) *FindingDTO {
	dto := fromModel(finding)
	if finding.PhotoID == nil {
		return dto
	}
	photo, err := s.photos.FindByID(ctx, *finding.PhotoID)
	if err != nil || photo.StoragePath == "" {
		return dto
	}
	url, err := s.storage.SignedReadURL(s.buckets.PhotosBucket, photo.StoragePath, s.buckets.DownloadURLExpiry)
	if err != nil {
		s.logger.Warn().Err(err).Str("object", photo.StoragePath).Msg("mint signed photo url for finding")
		return dto
	}
	dto.PhotoURL = url
	return dto
}

// validateCreateInput reports the first missing field by its wire name.
func validateCreateInput(input CreateFindingInput) error {
	if input.InspectionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: inspectionId")
	}
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: title")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: description")
	}
	if input.Category == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: category")
	}
	if input.Severity == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing required field: severity")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid finding category")
	}
	if !input.Severity.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid severity")
	}
	return nil
}

func applyUpdate(finding *models.Finding, input UpdateFindingInput) {
	if input.Title != nil {
		finding.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		finding.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		finding.Category = *input.Category
	}
	if input.Severity != nil {
		finding.Severity = *input.Severity
	}
	if input.Location != nil {
		finding.Location = input.Location
	}
	if input.CostEstimate != nil {
		finding.CostEstimate = input.CostEstimate
	}
	if input.CostMin != nil {
		finding.CostMin = input.CostMin
	}
	if input.CostMax != nil {
		finding.CostMax = input.CostMax
	}
	if input.Status != nil {
		finding.Status = *input.Status
	}
}
