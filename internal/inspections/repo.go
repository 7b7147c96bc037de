package inspections

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/pagination"
)

// MediaObjects holds the blob keys owned by one inspection, grouped by
// the bucket each kind lives in. Collected before a delete so the
// storage sweep can run ahead of the row cascade.
type MediaObjects struct {
	PhotoPaths     []string
	ThumbnailPaths []string
	VoiceNotePaths []string
}

// Repository provides inspection persistence over GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, inspection *models.Inspection) (*models.Inspection, error) {
	if err := r.db.WithContext(ctx).Create(inspection).Error; err != nil {
		return nil, err
	}
	return inspection, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	var inspection models.Inspection
	if err := r.db.WithContext(ctx).First(&inspection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inspection, nil
}

func (r *Repository) Update(ctx context.Context, inspection *models.Inspection) error {
	return r.db.WithContext(ctx).Save(inspection).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Inspection{}, "id = ?", id).Error
}

// List returns the caller's inspections newest-first with the total count
// before pagination is applied.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Inspection, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Inspection{}).
		Where("user_id = ?", userID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PropertyType != nil {
		query = query.Where("property_type = ?", *filters.PropertyType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Inspection
	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CollectMediaObjects gathers every blob key under the inspection so the
// caller can sweep object storage before deleting the row.
func (r *Repository) CollectMediaObjects(ctx context.Context, inspectionID uuid.UUID) (*MediaObjects, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Select("storage_path", "thumbnail_path").
		Where("inspection_id = ?", inspectionID).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}

	var voiceNotes []models.VoiceNote
	err = r.db.WithContext(ctx).
		Select("storage_path").
		Where("inspection_id = ?", inspectionID).
		Find(&voiceNotes).Error
	if err != nil {
		return nil, err
	}

	objects := &MediaObjects{}
	for _, photo := range photos {
		if photo.StoragePath != "" {
			objects.PhotoPaths = append(objects.PhotoPaths, photo.StoragePath)
		}
		if photo.ThumbnailPath != nil && *photo.ThumbnailPath != "" {
			objects.ThumbnailPaths = append(objects.ThumbnailPaths, *photo.ThumbnailPath)
		}
	}
	for _, note := range voiceNotes {
		if note.StoragePath != "" {
			objects.VoiceNotePaths = append(objects.VoiceNotePaths, note.StoragePath)
		}
	}
	return objects, nil
}
