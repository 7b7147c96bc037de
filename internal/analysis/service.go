package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type photosRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
}

type voiceNotesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.VoiceNote, error)
}

type ownershipGuard interface {
	ResolveOwned(ctx context.Context, inspectionID, userID uuid.UUID) (*models.Inspection, error)
}

// QueuedResponse acknowledges an accepted analysis request. The work
// itself completes out of band; callers observe results by re-reading
// the resource later.
type QueuedResponse struct {
	PhotoID       *uuid.UUID `json:"photoId,omitempty"`
	VoiceNoteID   *uuid.UUID `json:"voiceNoteId,omitempty"`
	Status        string     `json:"status"`
	Message       string     `json:"message"`
	EstimatedTime string     `json:"estimatedTime"`
}

// Service queues photo analysis and voice note transcription jobs.
type Service interface {
	QueuePhotoAnalysis(ctx context.Context, userID, photoID uuid.UUID) (*QueuedResponse, error)
	QueueTranscription(ctx context.Context, userID, voiceNoteID uuid.UUID) (*QueuedResponse, error)
}

// ServiceParams wires the dependencies for NewService. Publisher may be
// nil: the ack contract holds even when no queue is configured.
type ServiceParams struct {
	Photos     photosRepository
	VoiceNotes voiceNotesRepository
	Guard      ownershipGuard
	Publisher  Publisher
	Logger     zerolog.Logger
	Now        func() time.Time
}

type service struct {
	photos     photosRepository
	voiceNotes voiceNotesRepository
	guard      ownershipGuard
	publisher  Publisher
	logger     zerolog.Logger
	now        func() time.Time
}

// NewService builds the analysis queue service.
func NewService(params ServiceParams) (Service, error) {
	if params.Photos == nil {
		return nil, fmt.Errorf("photos repository required")
	}
	if params.VoiceNotes == nil {
		return nil, fmt.Errorf("voice notes repository required")
	}
	if params.Guard == nil {
		return nil, fmt.Errorf("ownership guard required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		photos:     params.Photos,
		voiceNotes: params.VoiceNotes,
		guard:      params.Guard,
		publisher:  params.Publisher,
		logger:     params.Logger,
		now:        now,
	}, nil
}

func (s *service) QueuePhotoAnalysis(ctx context.Context, userID, photoID uuid.UUID) (*QueuedResponse, error) {
	if photoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Photo not found")
	}
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Photo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load photo")
	}
	if _, err := s.guard.ResolveOwned(ctx, photo.InspectionID, userID); err != nil {
		return nil, err
	}

	s.publish(ctx, JobMessage{
		JobType:      JobTypePhotoAnalysis,
		InspectionID: photo.InspectionID,
		PhotoID:      photo.ID,
		RequestedAt:  s.now().UTC(),
	})

	return &QueuedResponse{
		PhotoID:       &photo.ID,
		Status:        "queued",
		Message:       "Photo analysis has been queued",
		EstimatedTime: "5-10 seconds",
	}, nil
}

func (s *service) QueueTranscription(ctx context.Context, userID, voiceNoteID uuid.UUID) (*QueuedResponse, error) {
	if voiceNoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Voice note not found")
	}
	note, err := s.voiceNotes.FindByID(ctx, voiceNoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Voice note not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load voice note")
	}
	if _, err := s.guard.ResolveOwned(ctx, note.InspectionID, userID); err != nil {
		return nil, err
	}

	s.publish(ctx, JobMessage{
		JobType:      JobTypeTranscription,
		InspectionID: note.InspectionID,
		VoiceNoteID:  note.ID,
		RequestedAt:  s.now().UTC(),
	})

	return &QueuedResponse{
		VoiceNoteID:   &note.ID,
		Status:        "queued",
		Message:       "Transcription has been queued",
		EstimatedTime: "10-20 seconds",
	}, nil
}

// publish is best-effort: the queued ack goes out even when the broker
// is down or absent, and the caller retries by re-queuing.
func (s *service) publish(ctx context.Context, job JobMessage) {
	if s.publisher == nil {
		s.logger.Debug().Str("job_type", job.JobType).Msg("no publisher configured, job ack only")
		return
	}
	data, err := json.Marshal(job)
	if err != nil {
		s.logger.Error().Err(err).Str("job_type", job.JobType).Msg("encode analysis job")
		return
	}
	attrs := map[string]string{jobTypeAttribute: job.JobType}
	if err := s.publisher.Publish(ctx, data, attrs); err != nil {
		s.logger.Error().Err(err).Str("job_type", job.JobType).Msg("publish analysis job")
	}
}
