package analysis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	pkgerrors "github.com/inspectai/inspectai-backend/pkg/errors"
)

type stubPhotos struct {
	photo *models.Photo
}

func (s *stubPhotos) FindByID(_ context.Context, _ uuid.UUID) (*models.Photo, error) {
	if s.photo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.photo, nil
}

type stubVoiceNotes struct {
	note *models.VoiceNote
}

func (s *stubVoiceNotes) FindByID(_ context.Context, _ uuid.UUID) (*models.VoiceNote, error) {
	if s.note == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.note, nil
}

type stubGuard struct {
	inspection *models.Inspection
	err        error
}

func (s *stubGuard) ResolveOwned(_ context.Context, _, _ uuid.UUID) (*models.Inspection, error) {
	return s.inspection, s.err
}

type recordingPublisher struct {
	data  [][]byte
	attrs []map[string]string
}

func (r *recordingPublisher) Publish(_ context.Context, data []byte, attributes map[string]string) error {
	r.data = append(r.data, data)
	r.attrs = append(r.attrs, attributes)
	return nil
}

func newAnalysisService(t *testing.T, photos *stubPhotos, notes *stubVoiceNotes, guard *stubGuard, pub Publisher) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Photos:     photos,
		VoiceNotes: notes,
		Guard:      guard,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestQueuePhotoAnalysisPublishesAndAcks(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	photo := &models.Photo{ID: uuid.New(), InspectionID: inspection.ID}
	pub := &recordingPublisher{}
	svc := newAnalysisService(t, &stubPhotos{photo: photo}, &stubVoiceNotes{}, &stubGuard{inspection: inspection}, pub)

	resp, err := svc.QueuePhotoAnalysis(context.Background(), inspection.UserID, photo.ID)
	if err != nil {
		t.Fatalf("QueuePhotoAnalysis failed: %v", err)
	}

	if resp.Status != "queued" || resp.Message != "Photo analysis has been queued" || resp.EstimatedTime != "5-10 seconds" {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.PhotoID == nil || *resp.PhotoID != photo.ID {
		t.Fatalf("photoId = %v", resp.PhotoID)
	}

	if len(pub.data) != 1 {
		t.Fatalf("published %d messages", len(pub.data))
	}
	var job JobMessage
	if err := json.Unmarshal(pub.data[0], &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.JobType != JobTypePhotoAnalysis || job.PhotoID != photo.ID {
		t.Fatalf("job = %+v", job)
	}
	if pub.attrs[0]["job_type"] != JobTypePhotoAnalysis {
		t.Fatalf("attrs = %v", pub.attrs[0])
	}
}

func TestQueueTranscriptionPublishesAndAcks(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	note := &models.VoiceNote{ID: uuid.New(), InspectionID: inspection.ID}
	pub := &recordingPublisher{}
	svc := newAnalysisService(t, &stubPhotos{}, &stubVoiceNotes{note: note}, &stubGuard{inspection: inspection}, pub)

	resp, err := svc.QueueTranscription(context.Background(), inspection.UserID, note.ID)
	if err != nil {
		t.Fatalf("QueueTranscription failed: %v", err)
	}
	if resp.Message != "Transcription has been queued" || resp.EstimatedTime != "10-20 seconds" {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.VoiceNoteID == nil || *resp.VoiceNoteID != note.ID {
		t.Fatalf("voiceNoteId = %v", resp.VoiceNoteID)
	}

	var job JobMessage
	if err := json.Unmarshal(pub.data[0], &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.JobType != JobTypeTranscription || job.VoiceNoteID != note.ID {
		t.Fatalf("job = %+v", job)
	}
}

func TestQueueWithoutPublisherStillAcks(t *testing.T) {
	inspection := &models.Inspection{ID: uuid.New(), UserID: uuid.New()}
	photo := &models.Photo{ID: uuid.New(), InspectionID: inspection.ID}
	svc := newAnalysisService(t, &stubPhotos{photo: photo}, &stubVoiceNotes{}, &stubGuard{inspection: inspection}, nil)

	resp, err := svc.QueuePhotoAnalysis(context.Background(), inspection.UserID, photo.ID)
	if err != nil {
		t.Fatalf("QueuePhotoAnalysis failed: %v", err)
	}
	if resp.Status != "queued" {
		t.Fatalf("status = %s", resp.Status)
	}
}

func TestQueuePhotoAnalysisMissingPhotoIsNotFound(t *testing.T) {
	svc := newAnalysisService(t, &stubPhotos{}, &stubVoiceNotes{}, &stubGuard{}, nil)

	_, err := svc.QueuePhotoAnalysis(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQueuePhotoAnalysisPropagatesGuardError(t *testing.T) {
	photo := &models.Photo{ID: uuid.New(), InspectionID: uuid.New()}
	guard := &stubGuard{err: pkgerrors.New(pkgerrors.CodeForbidden, "Forbidden")}
	svc := newAnalysisService(t, &stubPhotos{photo: photo}, &stubVoiceNotes{}, guard, nil)

	_, err := svc.QueuePhotoAnalysis(context.Background(), uuid.New(), photo.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
