package analysis

import (
	"context"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
)

// Job type attribute values carried on every queue message.
const (
	JobTypePhotoAnalysis = "photo_analysis"
	JobTypeTranscription = "transcription"

	jobTypeAttribute = "job_type"

	defaultPublishTimeout = 10 * time.Second
)

// JobMessage is the queue payload for one analysis request.
type JobMessage struct {
	JobType      string    `json:"jobType"`
	InspectionID uuid.UUID `json:"inspectionId"`
	PhotoID      uuid.UUID `json:"photoId,omitempty"`
	VoiceNoteID  uuid.UUID `json:"voiceNoteId,omitempty"`
	RequestedAt  time.Time `json:"requestedAt"`
}

// Publisher abstracts the queue so the service can be exercised without
// a live broker and so an unconfigured queue degrades to a no-op.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) error
}

type pubsubPublisher struct {
	pub *pubsub.Publisher
}

// NewPubSubPublisher adapts a Pub/Sub publisher handle to the Publisher
// interface, blocking until the broker acknowledges each message.
func NewPubSubPublisher(pub *pubsub.Publisher) Publisher {
	if pub == nil {
		return nil
	}
	return &pubsubPublisher{pub: pub}
}

func (p *pubsubPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) error {
	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()

	result := p.pub.Publish(publishCtx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})
	_, err := result.Get(publishCtx)
	return err
}
