package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization groups the profiles and product catalog owned by one user.
type Organization struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Name        string         `gorm:"column:name;not null"`
	Slug        string         `gorm:"column:slug;type:varchar(60);not null;uniqueIndex"`
	Logo        *string        `gorm:"column:logo"`
	Type        string         `gorm:"column:type;not null;default:'business'"`
	Description string         `gorm:"column:description"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	IsVerified  bool           `gorm:"column:is_verified;not null;default:false"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
