package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/inspectai/inspectai-backend/pkg/enums"
)

// Profile is the canonical identity entity. Every inspection hangs off
// exactly one profile.
type Profile struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash   string         `gorm:"column:password_hash;not null"`
	FullName       string         `gorm:"column:full_name;not null"`
	AvatarURL      *string        `gorm:"column:avatar_url"`
	Role           enums.UserRole `gorm:"column:role;type:user_role;not null;default:inspector"`
	OrganizationID *uuid.UUID     `gorm:"column:organization_id;type:uuid"`
	LastLoginAt    *time.Time     `gorm:"column:last_login_at"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
