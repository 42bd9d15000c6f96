package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialLink is a platform handle shown on a public profile. The platform
// value is validated against the social platform catalog, not a DB enum, so
// new platforms can be added without a migration.
type SocialLink struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;not null;index"`
	Platform  string    `gorm:"column:platform;type:varchar(40);not null"`
	URL       string    `gorm:"column:url;not null"`
	Label     string    `gorm:"column:label"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SocialLink) TableName() string {
	return "social_links"
}
