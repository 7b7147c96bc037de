package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/logger"
	"github.com/inspectai/inspectai-backend/pkg/metrics"
)

type photoStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	Update(ctx context.Context, photo *models.Photo) error
}

type voiceNoteStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.VoiceNote, error)
	Update(ctx context.Context, note *models.VoiceNote) error
}

// Worker consumes queued analysis jobs and records results. The real
// ML collaborator is not built; the worker writes canned results so the
// rest of the pipeline (queue, retries, processed_at, metrics) runs end
// to end.
type Worker struct {
	photos       photoStore
	voiceNotes   voiceNoteStore
	subscription *pubsub.Subscriber
	jobMetrics   *metrics.AnalysisJobMetrics
	logg         *logger.Logger
	now          func() time.Time
}

// WorkerParams wires the dependencies for NewWorker.
type WorkerParams struct {
	Photos       photoStore
	VoiceNotes   voiceNoteStore
	Subscription *pubsub.Subscriber
	JobMetrics   *metrics.AnalysisJobMetrics
	Logger       *logger.Logger
	Now          func() time.Time
}

// NewWorker builds the analysis worker.
func NewWorker(params WorkerParams) (*Worker, error) {
	if params.Photos == nil {
		return nil, fmt.Errorf("photos store required")
	}
	if params.VoiceNotes == nil {
		return nil, fmt.Errorf("voice notes store required")
	}
	if params.Subscription == nil {
		return nil, fmt.Errorf("analysis subscription required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Worker{
		photos:       params.Photos,
		voiceNotes:   params.VoiceNotes,
		subscription: params.Subscription,
		jobMetrics:   params.JobMetrics,
		logg:         params.Logger,
		now:          now,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	return w.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if err := w.Process(ctx, msg.Data); err != nil {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

// Process handles one job payload. Malformed payloads and missing rows
// return nil so the message is acked instead of redelivered forever.
func (w *Worker) Process(ctx context.Context, data []byte) error {
	var job JobMessage
	if err := json.Unmarshal(data, &job); err != nil {
		w.logg.Error(ctx, "failed to decode analysis job", err)
		return nil
	}

	logCtx := w.logg.WithFields(ctx, map[string]any{
		"job_type":      job.JobType,
		"inspection_id": job.InspectionID.String(),
	})

	started := w.now()
	var err error
	switch job.JobType {
	case JobTypePhotoAnalysis:
		err = w.analyzePhoto(logCtx, job.PhotoID)
	case JobTypeTranscription:
		err = w.transcribeVoiceNote(logCtx, job.VoiceNoteID)
	default:
		w.logg.Warn(logCtx, "skipping unknown job type")
		return nil
	}
	w.jobMetrics.ObserveDuration(job.JobType, w.now().Sub(started))

	if err != nil {
		w.jobMetrics.IncFailure(job.JobType)
		w.logg.Error(logCtx, "analysis job failed", err)
		return err
	}
	w.jobMetrics.IncSuccess(job.JobType)
	return nil
}

func (w *Worker) analyzePhoto(ctx context.Context, photoID uuid.UUID) error {
	if photoID == uuid.Nil {
		w.logg.Warn(ctx, "photo analysis job without photo id")
		return nil
	}
	photo, err := w.photos.FindByID(ctx, photoID)
	if err != nil {
		// Deleted before the job ran; nothing to record.
		w.logg.Warn(ctx, "photo missing for analysis job")
		return nil
	}

	caption := fmt.Sprintf("Automated review of %s photo", photo.Category)
	condition := "fair"
	confidence := 0.5
	processedAt := w.now().UTC()

	photo.AICaption = &caption
	photo.AIObjects = stubObjectsFor(photo.Category.String())
	photo.AICondition = &condition
	photo.AIConfidence = &confidence
	photo.ProcessedAt = &processedAt
	photo.Error = nil
	return w.photos.Update(ctx, photo)
}

func (w *Worker) transcribeVoiceNote(ctx context.Context, voiceNoteID uuid.UUID) error {
	if voiceNoteID == uuid.Nil {
		w.logg.Warn(ctx, "transcription job without voice note id")
		return nil
	}
	note, err := w.voiceNotes.FindByID(ctx, voiceNoteID)
	if err != nil {
		w.logg.Warn(ctx, "voice note missing for transcription job")
		return nil
	}

	transcript := "Transcription pending integration with the speech service."
	summary := "Automated transcription placeholder."
	processedAt := w.now().UTC()

	note.Transcript = &transcript
	note.Summary = &summary
	note.ProcessedAt = &processedAt
	note.Error = nil
	return w.voiceNotes.Update(ctx, note)
}

func stubObjectsFor(category string) []string {
	switch category {
	case "roof":
		return []string{"shingles", "flashing"}
	case "electrical":
		return []string{"panel", "wiring"}
	case "plumbing":
		return []string{"pipe", "fixture"}
	default:
		return []string{"structure"}
	}
}
