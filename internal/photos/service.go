package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/internal/media"
	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type repository interface {
	Create(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	ListByInspection(ctx context.Context, inspectionID uuid.UUID) ([]models.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ownershipGuard interface {
	ResolveOwned(ctx context.Context, inspectionID, userID uuid.UUID) (*models.Inspection, error)
}

type objectStore interface {
	Upload(ctx context.Context, bucket, object, contentType string, body io.Reader) error
	DeleteObject(ctx context.Context, bucket, object string) error
	SignedReadURL(bucket, object string, ttl time.Duration) (string, error)
	PublicURL(bucket, object string) string
}

// Service exposes the photo operations. Every read path mints fresh
// signed URLs; nothing durable is derived from a previously minted URL.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, input UploadPhotosInput) (*UploadPhotosResponse, error)
	ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID) ([]PhotoDTO, error)
	Get(ctx context.Context, userID, photoID uuid.UUID) (*PhotoDTO, error)
	Delete(ctx context.Context, userID, photoID uuid.UUID) error
}

// ServiceParams wires the dependencies for NewService.
type ServiceParams struct {
	Repo    repository
	Guard   ownershipGuard
	Storage objectStore
	Buckets config.GCSConfig
	Logger  zerolog.Logger
}

type service struct {
	repo    repository
	guard   ownershipGuard
	storage objectStore
	buckets config.GCSConfig
	logger  zerolog.Logger
}

// NewService builds the photo service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("photos repository required")
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
		logger:  params.Logger,
	}, nil
}

type uploadedPhoto struct {
	index int
	photo *models.Photo
}

// Upload stores every file concurrently and keeps the batch atomic: if
// any file fails, already committed blobs and rows are rolled back and
// the whole request errors.
func (s *service) Upload(ctx context.Context, userID uuid.UUID, input UploadPhotosInput) (*UploadPhotosResponse, error) {
	if len(input.Files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No files provided")
	}
	inspection, err := s.guard.ResolveOwned(ctx, input.InspectionID, userID)
	if err != nil {
		return nil, err
	}
	for _, file := range input.Files {
		if !media.IsAllowedPhotoMime(file.ContentType) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Unsupported photo type: "+file.ContentType)
		}
	}

	var (
		mu        sync.Mutex
		committed []uploadedPhoto
	)
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range input.Files {
		group.Go(func() error {
			photo, err := s.uploadOne(groupCtx, inspection, input, file)
			if err != nil {
				return err
			}
			mu.Lock()
			committed = append(committed, uploadedPhoto{index: i, photo: photo})
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		s.rollback(ctx, committed)
		return nil, err
	}

	ordered := make([]PhotoDTO, len(input.Files))
	for _, entry := range committed {
		dto := fromModel(entry.photo)
		s.attachURLs(dto, entry.photo)
		ordered[entry.index] = *dto
	}
	return &UploadPhotosResponse{
		Photos:  ordered,
		Message: fmt.Sprintf("Successfully uploaded %d photos", len(ordered)),
	}, nil
}

func (s *service) uploadOne(ctx context.Context, inspection *models.Inspection, input UploadPhotosInput, file FileUpload) (*models.Photo, error) {
	objectID := uuid.New()
	key := media.BuildObjectKey(inspection.UserID, inspection.ID, objectID, file.FileName)

	body, err := file.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}
	defer body.Close()

	if err := s.storage.Upload(ctx, s.buckets.PhotosBucket, key, file.ContentType, body); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload photo")
	}

	category := enums.PhotoCategoryOther
	if input.Category != nil {
		category = *input.Category
	}
	photo := &models.Photo{
		ID:           objectID,
		InspectionID: inspection.ID,
		StoragePath:  key,
		FileName:     media.SanitizeFileName(file.FileName),
		Category:     category,
		Location:     input.Location,
	}
	created, err := s.repo.Create(ctx, photo)
	if err != nil {
		// Compensate: the blob is already up but the row never landed.
		if delErr := s.storage.DeleteObject(ctx, s.buckets.PhotosBucket, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("object", key).Msg("orphaned photo blob after failed insert")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert photo")
	}
	return created, nil
}

func (s *service) rollback(ctx context.Context, committed []uploadedPhoto) {
	for _, entry := range committed {
		if err := s.repo.Delete(ctx, entry.photo.ID); err != nil {
			s.logger.Error().Err(err).Str("photo_id", entry.photo.ID.String()).Msg("rollback: delete photo row")
		}
		if err := s.storage.DeleteObject(ctx, s.buckets.PhotosBucket, entry.photo.StoragePath); err != nil {
			s.logger.Error().Err(err).Str("object", entry.photo.StoragePath).Msg("rollback: delete photo blob")
		}
	}
}

func (s *service) ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID) ([]PhotoDTO, error) {
	if _, err := s.guard.ResolveOwned(ctx, inspectionID, userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByInspection(ctx, inspectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list photos")
	}

	dtos := make([]PhotoDTO, 0, len(items))
	for i := range items {
		dto := fromModel(&items[i])
		s.attachURLs(dto, &items[i])
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, userID, photoID uuid.UUID) (*PhotoDTO, error) {
	photo, err := s.resolveOwned(ctx, userID, photoID)
	if err != nil {
		return nil, err
	}
	dto := fromModel(photo)
	s.attachURLs(dto, photo)
	return dto, nil
}

// Delete removes the blob and thumbnail before the row so a failed
// storage call never leaves an unreachable object behind.
func (s *service) Delete(ctx context.Context, userID, photoID uuid.UUID) error {
	photo, err := s.resolveOwned(ctx, userID, photoID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, s.buckets.PhotosBucket, photo.StoragePath); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete photo object")
	}
	if photo.ThumbnailPath != nil && *photo.ThumbnailPath != "" {
		if err := s.storage.DeleteObject(ctx, s.buckets.ThumbnailsBucket, *photo.ThumbnailPath); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete thumbnail object")
		}
	}
	if err := s.repo.Delete(ctx, photo.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete photo")
	}
	return nil
}

func (s *service) resolveOwned(ctx context.Context, userID, photoID uuid.UUID) (*models.Photo, error) {
	if photoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Photo not found")
	}
	photo, err := s.repo.FindByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Photo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load photo")
	}
	if _, err := s.guard.ResolveOwned(ctx, photo.InspectionID, userID); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *service) attachURLs(dto *PhotoDTO, photo *models.Photo) {
	if dto == nil || photo == nil {
		return
	}
	if photo.StoragePath != "" {
		url, err := s.storage.SignedReadURL(s.buckets.PhotosBucket, photo.StoragePath, s.buckets.DownloadURLExpiry)
		if err != nil {
			s.logger.Warn().Err(err).Str("object", photo.StoragePath).Msg("mint signed photo url")
		} else {
			dto.URL = url
		}
	}
	if photo.ThumbnailPath != nil && *photo.ThumbnailPath != "" {
		dto.ThumbnailURL = s.storage.PublicURL(s.buckets.ThumbnailsBucket, *photo.ThumbnailPath)
	}
}
