package models

import (
	"time"

	"github.com/google/uuid"
)

// VCardSetting holds the downloadable contact card fields for a profile.
// One row per profile; every field is optional and empty fields are simply
// omitted from the rendered card.
type VCardSetting struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID    uuid.UUID `gorm:"column:profile_id;type:uuid;not null;uniqueIndex"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Organization string    `gorm:"column:organization"`
	JobTitle     string    `gorm:"column:job_title"`
	Email        string    `gorm:"column:email"`
	Phone        string    `gorm:"column:phone"`
	PhoneWork    string    `gorm:"column:phone_work"`
	Website      string    `gorm:"column:website"`
	Street       string    `gorm:"column:street"`
	City         string    `gorm:"column:city"`
	State        string    `gorm:"column:state"`
	PostalCode   string    `gorm:"column:postal_code"`
	Country      string    `gorm:"column:country"`
	Note         string    `gorm:"column:note"`
	IsEnabled    bool      `gorm:"column:is_enabled;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (VCardSetting) TableName() string {
	return "vcard_settings"
}
