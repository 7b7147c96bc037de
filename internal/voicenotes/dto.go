package voicenotes

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
)

// UploadVoiceNoteInput carries the single audio file accepted per request.
type UploadVoiceNoteInput struct {
	InspectionID uuid.UUID
	FileName     string
	ContentType  string
	Duration     *float64
	Open         func() (io.ReadCloser, error)
}

// VoiceNoteDTO is the transport shape for a voice note. URL is a
// short-lived signed read link minted on every response.
type VoiceNoteDTO struct {
	ID           uuid.UUID  `json:"id"`
	InspectionID uuid.UUID  `json:"inspectionId"`
	FileName     string     `json:"fileName"`
	Duration     *float64   `json:"duration,omitempty"`
	Transcript   *string    `json:"transcript,omitempty"`
	Summary      *string    `json:"summary,omitempty"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	Error        *string    `json:"error,omitempty"`
	URL          string     `json:"url,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func fromModel(v *models.VoiceNote) *VoiceNoteDTO {
	if v == nil {
		return nil
	}
	return &VoiceNoteDTO{
		ID:           v.ID,
		InspectionID: v.InspectionID,
		FileName:     v.FileName,
		Duration:     v.Duration,
		Transcript:   v.Transcript,
		Summary:      v.Summary,
		ProcessedAt:  v.ProcessedAt,
		Error:        v.Error,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
