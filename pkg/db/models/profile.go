package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a public link-in-bio page under an organization. The primary
// profile keeps a null slug and is served from the organization slug alone.
type Profile struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID      `gorm:"column:organization_id;type:uuid;not null;index;uniqueIndex:idx_profiles_org_slug"`
	Name           string         `gorm:"column:name;not null"`
	Slug           *string        `gorm:"column:slug;type:varchar(60);uniqueIndex:idx_profiles_org_slug"`
	Photo          *string        `gorm:"column:photo"`
	JobTitle       *string        `gorm:"column:job_title"`
	Slogan         *string        `gorm:"column:slogan"`
	Bio            string         `gorm:"column:bio"`
	IsPrimary      bool           `gorm:"column:is_primary;not null;default:false"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	ViewsCount     uint           `gorm:"column:views_count;not null;default:0"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
