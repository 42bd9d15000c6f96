package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// SubscriptionPlan captures a sellable tier with per-cycle pricing and the
// usage limits it grants. Each billing cycle carries its own stored price;
// none is derived from another.
type SubscriptionPlan struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Slug            string          `gorm:"column:slug;not null;uniqueIndex"`
	Name            string          `gorm:"column:name;not null"`
	Description     string          `gorm:"column:description"`
	PriceMonthly    decimal.Decimal `gorm:"column:price_monthly;type:numeric(10,2);not null"`
	PriceQuarterly  decimal.Decimal `gorm:"column:price_quarterly;type:numeric(10,2);not null"`
	PriceSemiannual decimal.Decimal `gorm:"column:price_semiannual;type:numeric(10,2);not null"`
	PriceAnnual     decimal.Decimal `gorm:"column:price_annual;type:numeric(10,2);not null"`
	Currency        string          `gorm:"column:currency;not null;default:'USD'"`

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

	Features   pq.StringArray `gorm:"column:features;type:text[];default:ARRAY[]::text[]"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true"`
	IsFeatured bool           `gorm:"column:is_featured;not null;default:false"`
	SortOrder  int            `gorm:"column:sort_order;not null;default:0"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
