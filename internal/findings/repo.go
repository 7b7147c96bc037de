package findings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
)

// Repository provides finding persistence over GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, finding *models.Finding) (*models.Finding, error) {
	if err := r.db.WithContext(ctx).Create(finding).Error; err != nil {
		return nil, err
	}
	return finding, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Finding, error) {
	var finding models.Finding
	if err := r.db.WithContext(ctx).First(&finding, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &finding, nil
}

// ListByInspection returns findings newest-first.
func (r *Repository) ListByInspection(ctx context.Context, inspectionID uuid.UUID, filters ListFilters) ([]models.Finding, error) {
	query := r.db.WithContext(ctx).
		Where("inspection_id = ?", inspectionID)
	if filters.Severity != nil {
		query = query.Where("severity = ?", *filters.Severity)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}

	var items []models.Finding
	err := query.
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) Update(ctx context.Context, finding *models.Finding) error {
	return r.db.WithContext(ctx).Save(finding).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Finding{}, "id = ?", id).Error
}

// SumCostEstimates totals the point estimates for one inspection,
// treating null estimates as zero.
func (r *Repository) SumCostEstimates(ctx context.Context, inspectionID uuid.UUID) (string, error) {
	var total *string
	err := r.db.WithContext(ctx).
		Model(&models.Finding{}).
		Where("inspection_id = ?", inspectionID).
		Select("COALESCE(SUM(cost_estimate), 0)").
		Scan(&total).Error
	if err != nil {
		return "0", err
	}
	if total == nil {
		return "0", nil
	}
	return *total, nil
}

// CountByInspection counts findings under one inspection.
func (r *Repository) CountByInspection(ctx context.Context, inspectionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Finding{}).
		Where("inspection_id = ?", inspectionID).
		Count(&count).Error
	return count, err
}
