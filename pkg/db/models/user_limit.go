package models

import (
	"time"

	"github.com/google/uuid"
)

// UserLimit is a per-user entitlement override consulted only when the user
// has no active subscription. It mirrors the numeric and capability fields of
// a plan.
type UserLimit struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`

	MaxOrganizations         int `gorm:"column:max_organizations;not null"`
	MaxProfilesPerOrg        int `gorm:"column:max_profiles_per_org;not null"`
	MaxProductsPerOrg        int `gorm:"column:max_products_per_org;not null"`
	MaxCustomLinksPerProfile int `gorm:"column:max_custom_links_per_profile;not null"`
	MaxSocialLinksPerProfile int `gorm:"column:max_social_links_per_profile;not null"`
	MaxAlertsPerProfile      int `gorm:"column:max_alerts_per_profile;not null"`

	CanUseCustomDomain bool `gorm:"column:can_use_custom_domain;not null;default:false"`
	CanRemoveBranding  bool `gorm:"column:can_remove_branding;not null;default:false"`
	CanAccessAnalytics bool `gorm:"column:can_access_analytics;not null;default:true"`
	CanUploadImages    bool `gorm:"column:can_upload_images;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
