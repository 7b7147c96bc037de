package reports

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
)

// Repository provides report persistence over GORM. Reports are
// append-only: there is no update path.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *Repository) ListByInspection(ctx context.Context, inspectionID uuid.UUID) ([]models.Report, error) {
	var items []models.Report
	err := r.db.WithContext(ctx).
		Where("inspection_id = ?", inspectionID).
		Order("generated_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
