package voicenotes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/internal/media"
	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db/models"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type repository interface {
	Create(ctx context.Context, note *models.VoiceNote) (*models.VoiceNote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.VoiceNote, error)
	ListByInspection(ctx context.Context, inspectionID uuid.UUID) ([]models.VoiceNote, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ownershipGuard interface {
	ResolveOwned(ctx context.Context, inspectionID, userID uuid.UUID) (*models.Inspection, error)
}

type objectStore interface {
	Upload(ctx context.Context, bucket, object, contentType string, body io.Reader) error
	DeleteObject(ctx context.Context, bucket, object string) error
	SignedReadURL(bucket, object string, ttl time.Duration) (string, error)
}

// Service exposes the voice note operations: one file per upload, one
// fresh signed URL per read.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, input UploadVoiceNoteInput) (*VoiceNoteDTO, error)
	ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID) ([]VoiceNoteDTO, error)
	Get(ctx context.Context, userID, voiceNoteID uuid.UUID) (*VoiceNoteDTO, error)
	Delete(ctx context.Context, userID, voiceNoteID uuid.UUID) error
}

// ServiceParams wires the dependencies for NewService.
type ServiceParams struct {
	Repo    repository
	Guard   ownershipGuard
	Storage objectStore
	Buckets config.GCSConfig
	Uploads config.UploadConfig
	Logger  zerolog.Logger
}

type service struct {
	repo    repository
	guard   ownershipGuard
	storage objectStore
	buckets config.GCSConfig
	uploads config.UploadConfig
	logger  zerolog.Logger
}

// NewService builds the voice note service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("voice notes repository required")
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
		uploads: params.Uploads,
		logger:  params.Logger,
	}, nil
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, input UploadVoiceNoteInput) (*VoiceNoteDTO, error) {
	if input.Open == nil || input.FileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No file provided")
	}
	inspection, err := s.guard.ResolveOwned(ctx, input.InspectionID, userID)
	if err != nil {
		return nil, err
	}
	if !media.IsAllowedVoiceNoteMime(input.ContentType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Unsupported audio type: "+input.ContentType)
	}
	if max := float64(s.uploads.MaxVoiceNoteDurationSecs); max > 0 && input.Duration != nil && *input.Duration > max {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Voice note exceeds maximum duration")
	}

	objectID := uuid.New()
	key := media.BuildObjectKey(inspection.UserID, inspection.ID, objectID, input.FileName)

	body, err := input.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}
	defer body.Close()

	if err := s.storage.Upload(ctx, s.buckets.VoiceNotesBucket, key, input.ContentType, body); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload voice note")
	}

	note := &models.VoiceNote{
		ID:           objectID,
		InspectionID: inspection.ID,
		StoragePath:  key,
		FileName:     media.SanitizeFileName(input.FileName),
		Duration:     input.Duration,
	}
	created, err := s.repo.Create(ctx, note)
	if err != nil {
		// Compensate: the blob is already up but the row never landed.
		if delErr := s.storage.DeleteObject(ctx, s.buckets.VoiceNotesBucket, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("object", key).Msg("orphaned voice note blob after failed insert")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert voice note")
	}

	dto := fromModel(created)
	s.attachURL(dto, created)
	return dto, nil
}

func (s *service) ListByInspection(ctx context.Context, userID, inspectionID uuid.UUID) ([]VoiceNoteDTO, error) {
	if _, err := s.guard.ResolveOwned(ctx, inspectionID, userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByInspection(ctx, inspectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list voice notes")
	}

	dtos := make([]VoiceNoteDTO, 0, len(items))
	for i := range items {
		dto := fromModel(&items[i])
		s.attachURL(dto, &items[i])
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, userID, voiceNoteID uuid.UUID) (*VoiceNoteDTO, error) {
	note, err := s.resolveOwned(ctx, userID, voiceNoteID)
	if err != nil {
		return nil, err
	}
	dto := fromModel(note)
	s.attachURL(dto, note)
	return dto, nil
}

// Delete removes the blob before the row.
func (s *service) Delete(ctx context.Context, userID, voiceNoteID uuid.UUID) error {
	note, err := s.resolveOwned(ctx, userID, voiceNoteID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, s.buckets.VoiceNotesBucket, note.StoragePath); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete voice note object")
	}
	if err := s.repo.Delete(ctx, note.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete voice note")
	}
	return nil
}

func (s *service) resolveOwned(ctx context.Context, userID, voiceNoteID uuid.UUID) (*models.VoiceNote, error) {
	if voiceNoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Voice note not found")
	}
	note, err := s.repo.FindByID(ctx, voiceNoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Voice note not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load voice note")
	}
	if _, err := s.guard.ResolveOwned(ctx, note.InspectionID, userID); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *service) attachURL(dto *VoiceNoteDTO, note *models.VoiceNote) {
	if dto == nil || note == nil || note.StoragePath == "" {
		return
	}
	url, err := s.storage.SignedReadURL(s.buckets.VoiceNotesBucket, note.StoragePath, s.buckets.DownloadURLExpiry)
	if err != nil {
		s.logger.Warn().Err(err).Str("object", note.StoragePath).Msg("mint signed voice note url")
		return
	}
	dto.URL = url
}
