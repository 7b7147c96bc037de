package photos

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	dbtypes "github.com/inspectai/inspectai-backend/pkg/db/types"
	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// FileUpload is one incoming multipart file. Open is called once per
// upload attempt so concurrent uploads never share a reader.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadPhotosInput carries a batch of photo files for one inspection.
// Category and Location, when present, apply to every file in the batch.
type UploadPhotosInput struct {
	InspectionID uuid.UUID
	Category     *enums.PhotoCategory
	Location     *string
	Files        []FileUpload
}

// PhotoDTO is the transport shape for a photo. URL is a short-lived
// signed read link minted on every response; ThumbnailURL is permanent.
type PhotoDTO struct {
	ID           uuid.UUID           `json:"id"`
	InspectionID uuid.UUID           `json:"inspectionId"`
	FileName     string              `json:"fileName"`
	Category     enums.PhotoCategory `json:"category"`
	Location     *string             `json:"location,omitempty"`
	Width        *int                `json:"width,omitempty"`
	Height       *int                `json:"height,omitempty"`
	AICaption    *string             `json:"aiCaption,omitempty"`
	AIObjects    dbtypes.StringArray `json:"aiObjects,omitempty"`
	AICondition  *string             `json:"aiCondition,omitempty"`
	AIConfidence *float64            `json:"aiConfidence,omitempty"`
	ProcessedAt  *time.Time          `json:"processedAt,omitempty"`
	Error        *string             `json:"error,omitempty"`
	URL          string              `json:"url,omitempty"`
	ThumbnailURL string              `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// UploadPhotosResponse is the 201 body for a successful batch upload.
type UploadPhotosResponse struct {
	Photos  []PhotoDTO `json:"photos"`
	Message string     `json:"message"`
}

func fromModel(p *models.Photo) *PhotoDTO {
	if p == nil {
		return nil
	}
	return &PhotoDTO{
		ID:           p.ID,
		InspectionID: p.InspectionID,
		FileName:     p.FileName,
		Category:     p.Category,
		Location:     p.Location,
		Width:        p.Width,
		Height:       p.Height,
		AICaption:    p.AICaption,
		AIObjects:    p.AIObjects,
		AICondition:  p.AICondition,
		AIConfidence: p.AIConfidence,
		ProcessedAt:  p.ProcessedAt,
		Error:        p.Error,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
