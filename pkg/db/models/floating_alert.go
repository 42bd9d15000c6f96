package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/pkg/enums"
)

// FloatingAlert is a dismissable banner overlaid on a public profile.
// Icon and color fall back to the alert type catalog defaults when empty.
type FloatingAlert struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID   uuid.UUID       `gorm:"column:profile_id;type:uuid;not null;index"`
	Type        enums.AlertType `gorm:"column:type;type:varchar(20);not null;default:'info'"`
	Title       string          `gorm:"column:title;not null"`
	Message     string          `gorm:"column:message"`
	Icon        string          `gorm:"column:icon"`
	Color       string          `gorm:"column:color;type:varchar(9)"`
	LinkURL     string          `gorm:"column:link_url"`
	LinkText    string          `gorm:"column:link_text"`
	StartsAt    *time.Time      `gorm:"column:starts_at"`
	EndsAt      *time.Time      `gorm:"column:ends_at"`
	IsDismissible bool          `gorm:"column:is_dismissible;not null;default:true"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (FloatingAlert) TableName() string {
	return "floating_alerts"
}

// IsVisible reports whether the alert should render at the given instant,
// honoring the optional scheduling window.
func (a *FloatingAlert) IsVisible(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartsAt != nil && now.Before(*a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && now.After(*a.EndsAt) {
		return false
	}
	return true
}
