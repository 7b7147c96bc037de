package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/pkg/db/models"
	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// ProfileDTO is the transport shape that omits credentials.
type ProfileDTO struct {
	ID             uuid.UUID      `json:"id"`
	Email          string         `json:"email"`
	FullName       string         `json:"fullName"`
	AvatarURL      *string        `json:"avatarUrl,omitempty"`
	Role           enums.UserRole `json:"role"`
	OrganizationID *uuid.UUID     `json:"organizationId,omitempty"`
	LastLoginAt    *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// UpdateProfileInput carries the patchable profile fields.
type UpdateProfileInput struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=1"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:             p.ID,
		Email:          p.Email,
		FullName:       p.FullName,
		AvatarURL:      p.AvatarURL,
		Role:           p.Role,
		OrganizationID: p.OrganizationID,
		LastLoginAt:    p.LastLoginAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
