package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomLink is an arbitrary outbound link on a public profile.
type CustomLink struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID   uuid.UUID `gorm:"column:profile_id;type:uuid;not null;index"`
	Title       string    `gorm:"column:title;not null"`
	URL         string    `gorm:"column:url;not null"`
	Description string    `gorm:"column:description"`
	Icon        string    `gorm:"column:icon"`
	Thumbnail   string    `gorm:"column:thumbnail"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	ClicksCount int       `gorm:"column:clicks_count;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (CustomLink) TableName() string {
	return "custom_links"
}
