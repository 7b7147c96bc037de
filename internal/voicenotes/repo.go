package voicenotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
)

// Repository provides voice note persistence over GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, note *models.VoiceNote) (*models.VoiceNote, error) {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VoiceNote, error) {
	var note models.VoiceNote
	if err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *Repository) ListByInspection(ctx context.Context, inspectionID uuid.UUID) ([]models.VoiceNote, error) {
	var items []models.VoiceNote
	err := r.db.WithContext(ctx).
		Where("inspection_id = ?", inspectionID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) Update(ctx context.Context, note *models.VoiceNote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.VoiceNote{}, "id = ?", id).Error
}
