package photos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
)

func setupPhotosTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	photos := `
CREATE TABLE IF NOT EXISTS photos (
  id TEXT PRIMARY KEY,
  inspection_id TEXT NOT NULL,
  file_name TEXT NOT NULL,
  storage_path TEXT NOT NULL,
  thumbnail_path TEXT,
  category TEXT NOT NULL DEFAULT 'other',
  location TEXT,
  width INTEGER,
  height INTEGER,
  ai_caption TEXT,
  ai_objects TEXT,
  ai_condition TEXT,
  ai_confidence REAL,
  processed_at DATETIME,
  error TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(photos).Error)
	require.NoError(t, db.Exec("DELETE FROM photos").Error)
	return db
}

func seedPhoto(t *testing.T, db *gorm.DB, inspectionID uuid.UUID, fileName string, created time.Time) *models.Photo {
	t.Helper()

	photo := &models.Photo{
		ID:           uuid.New(),
		InspectionID: inspectionID,
		FileName:     fileName,
		StoragePath:  "o/i/" + fileName,
		Category:     enums.PhotoCategoryInterior,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

func TestPhotoRepositoryCreateAndFind(t *testing.T) {
	db := setupPhotosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Photo{
		ID:           uuid.New(),
		InspectionID: uuid.New(),
		FileName:     "front-door.jpg",
		StoragePath:  "o/i/front-door.jpg",
		Category:     enums.PhotoCategoryExterior,
		AIObjects:    []string{"door", "porch"},
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "front-door.jpg", found.FileName)
	assert.Equal(t, enums.PhotoCategoryExterior, found.Category)
	assert.Equal(t, []string{"door", "porch"}, []string(found.AIObjects))
}

func TestPhotoRepositoryListByInspectionOrdersOldestFirst(t *testing.T) {
	db := setupPhotosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	inspectionID := uuid.New()
	base := time.Now().Add(-time.Hour)
	first := seedPhoto(t, db, inspectionID, "a.jpg", base)
	second := seedPhoto(t, db, inspectionID, "b.jpg", base.Add(time.Minute))
	seedPhoto(t, db, uuid.New(), "other.jpg", base)

	items, err := repo.ListByInspection(ctx, inspectionID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestPhotoRepositoryDelete(t *testing.T) {
	db := setupPhotosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	photo := seedPhoto(t, db, uuid.New(), "gone.jpg", time.Now())
	require.NoError(t, repo.Delete(ctx, photo.ID))

	_, err := repo.FindByID(ctx, photo.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
