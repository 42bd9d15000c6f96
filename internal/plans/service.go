package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type plansRepository interface {
	ListActive(ctx context.Context) ([]models.SubscriptionPlan, error)
	FindBySlug(ctx context.Context, slug string) (*models.SubscriptionPlan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error)
}

// Service exposes the read-only plan catalog.
type Service interface {
	ListPlans(ctx context.Context) ([]PlanDTO, error)
	GetPlanBySlug(ctx context.Context, slug string) (*PlanDTO, error)
}

type service struct {
	repo plansRepository
}

// CyclePrice is one billing option for a plan with its discount against monthly.
type CyclePrice struct {
	Cycle          enums.BillingCycle `json:"cycle"`
	Price          decimal.Decimal    `json:"price"`
	SavingsPercent int                `json:"savings_percent"`
}

// PlanDTO is the API representation of a subscription plan.
type PlanDTO struct {
	ID                       uuid.UUID    `json:"id"`
	Name                     string       `json:"name"`
	Slug                     string       `json:"slug"`
	Description              string       `json:"description"`
	Currency                 string       `json:"currency"`
	Pricing                  []CyclePrice `json:"pricing"`
	MaxOrganizations         int          `json:"max_organizations"`
	MaxProfilesPerOrg        int          `json:"max_profiles_per_org"`
	MaxProductsPerOrg        int          `json:"max_products_per_org"`
	MaxCustomLinksPerProfile int          `json:"max_custom_links_per_profile"`
	MaxSocialLinksPerProfile int          `json:"max_social_links_per_profile"`
	MaxAlertsPerProfile      int          `json:"max_alerts_per_profile"`
	CanUseCustomDomain       bool         `json:"can_use_custom_domain"`
	CanRemoveBranding        bool         `json:"can_remove_branding"`
	CanAccessAnalytics       bool         `json:"can_access_analytics"`
	CanUploadImages          bool         `json:"can_upload_images"`
	Features                 []string     `json:"features"`
	IsFeatured               bool         `json:"is_featured"`
	SortOrder                int          `json:"sort_order"`
}

// NewService builds a plan catalog service.
func NewService(repo plansRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plan repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPlans(ctx context.Context) ([]PlanDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing plans")
	}

	dtos := make([]PlanDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetPlanBySlug(ctx context.Context, slug string) (*PlanDTO, error) {
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan slug is required")
	}
	plan, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("plan %q not found", slug))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding plan")
	}
	dto := toDTO(plan)
	return &dto, nil
}

func toDTO(plan *models.SubscriptionPlan) PlanDTO {
	pricing := make([]CyclePrice, 0, 4)
	for _, cycle := range enums.BillingCycles() {
		pricing = append(pricing, CyclePrice{
			Cycle:          cycle,
			Price:          PriceForCycle(plan, cycle),
			SavingsPercent: SavingsPercentage(plan, cycle),
		})
	}

	return PlanDTO{
		ID:                       plan.ID,
		Name:                     plan.Name,
		Slug:                     plan.Slug,
		Description:              plan.Description,
		Currency:                 plan.Currency,
		Pricing:                  pricing,
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
		Features:                 plan.Features,
		IsFeatured:               plan.IsFeatured,
		SortOrder:                plan.SortOrder,
	}
}
