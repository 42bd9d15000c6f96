package entitlements

import (
	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// Source identifies where a user's effective limits came from. Exactly one
// source applies at a time; values are never blended across sources.
type Source string

const (
	SourceActivePlan   Source = "active_plan"
	SourceUserOverride Source = "user_override"
	SourceDefaults     Source = "defaults"
)

// Limits is the effective set of numeric maxes and capabilities for a user.
type Limits struct {
	MaxOrganizations         int  `json:"max_organizations"`
	MaxProfilesPerOrg        int  `json:"max_profiles_per_org"`
	MaxProductsPerOrg        int  `json:"max_products_per_org"`
	MaxCustomLinksPerProfile int  `json:"max_custom_links_per_profile"`
	MaxSocialLinksPerProfile int  `json:"max_social_links_per_profile"`
	MaxAlertsPerProfile      int  `json:"max_alerts_per_profile"`
	CanUseCustomDomain       bool `json:"can_use_custom_domain"`
	CanRemoveBranding        bool `json:"can_remove_branding"`
	CanAccessAnalytics       bool `json:"can_access_analytics"`
	CanUploadImages          bool `json:"can_upload_images"`
}

// Resolution pairs the effective limits with the source that produced them.
type Resolution struct {
	Limits   Limits `json:"limits"`
	Source   Source `json:"source"`
	PlanSlug string `json:"plan_slug,omitempty"`
}

// DefaultLimits returns the hardcoded fallback used when a user has neither
// an active subscription nor an override row.
func DefaultLimits() Limits {
	return Limits{
		MaxOrganizations:         1,
		MaxProfilesPerOrg:        5,
		MaxProductsPerOrg:        20,
		MaxCustomLinksPerProfile: 10,
		MaxSocialLinksPerProfile: 15,
		MaxAlertsPerProfile:      3,
		CanUseCustomDomain:       false,
		CanRemoveBranding:        false,
		CanAccessAnalytics:       true,
		CanUploadImages:          true,
	}
}

func limitsFromPlan(plan *models.SubscriptionPlan) Limits {
	return Limits{
		MaxOrganizations:         plan.MaxOrganizations,
		MaxProfilesPerOrg:        plan.MaxProfilesPerOrg,
		MaxProductsPerOrg:        plan.MaxProductsPerOrg,
		MaxCustomLinksPerProfile: plan.MaxCustomLinksPerProfile,
		MaxSocialLinksPerProfile: plan.MaxSocialLinksPerProfile,
		MaxAlertsPerProfile:      plan.MaxAlertsPerProfile,
		CanUseCustomDomain:       plan.CanUseCustomDomain,
		CanRemoveBranding:        plan.CanRemoveBranding,
		CanAccessAnalytics:       plan.CanAccessAnalytics,
		CanUploadImages:          plan.CanUploadImages,
	}
}

func limitsFromOverride(override *models.UserLimit) Limits {
	return Limits{
		MaxOrganizations:         override.MaxOrganizations,
		MaxProfilesPerOrg:        override.MaxProfilesPerOrg,
		MaxProductsPerOrg:        override.MaxProductsPerOrg,
		MaxCustomLinksPerProfile: override.MaxCustomLinksPerProfile,
		MaxSocialLinksPerProfile: override.MaxSocialLinksPerProfile,
		MaxAlertsPerProfile:      override.MaxAlertsPerProfile,
		CanUseCustomDomain:       override.CanUseCustomDomain,
		CanRemoveBranding:        override.CanRemoveBranding,
		CanAccessAnalytics:       override.CanAccessAnalytics,
		CanUploadImages:          override.CanUploadImages,
	}
}
