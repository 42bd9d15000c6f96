package models

import (
	"time"

	"github.com/google/uuid"
)

// QRSetting stores the visual options for a profile's QR code. The code is
// rendered client-side; the backend only keeps the style choices and builds
// the target payload.
type QRSetting struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID       uuid.UUID `gorm:"column:profile_id;type:uuid;not null;uniqueIndex"`
	ForegroundColor string    `gorm:"column:foreground_color;type:varchar(9);not null;default:'#000000'"`
	BackgroundColor string    `gorm:"column:background_color;type:varchar(9);not null;default:'#FFFFFF'"`
	DotStyle        string    `gorm:"column:dot_style;type:varchar(20);not null;default:'square'"`
	CornerStyle     string    `gorm:"column:corner_style;type:varchar(20);not null;default:'square'"`
	LogoURL         string    `gorm:"column:logo_url"`
	LogoSize        int       `gorm:"column:logo_size;not null;default:60"`
	ErrorCorrection string    `gorm:"column:error_correction;type:varchar(1);not null;default:'M'"`
	Size            int       `gorm:"column:size;not null;default:300"`
	UseGradient     bool      `gorm:"column:use_gradient;not null;default:false"`
	GradientStart   string    `gorm:"column:gradient_start;type:varchar(9)"`
	GradientEnd     string    `gorm:"column:gradient_end;type:varchar(9)"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (QRSetting) TableName() string {
	return "qr_settings"
}
