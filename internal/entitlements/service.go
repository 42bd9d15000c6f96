package entitlements

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/metrics"
)

type currentSubscriptionFinder interface {
	FindCurrent(ctx context.Context, userID uuid.UUID, now time.Time) (*models.Subscription, error)
}

type entitlementsRepository interface {
	FindOverride(ctx context.Context, userID uuid.UUID) (*models.UserLimit, error)
	CountOrganizations(ctx context.Context, userID uuid.UUID) (int64, error)
	CountProfiles(ctx context.Context, orgID uuid.UUID) (int64, error)
	CountProducts(ctx context.Context, orgID uuid.UUID) (int64, error)
	CountCustomLinks(ctx context.Context, profileID uuid.UUID) (int64, error)
	CountSocialLinks(ctx context.Context, profileID uuid.UUID) (int64, error)
	CountAlerts(ctx context.Context, profileID uuid.UUID) (int64, error)
}

// Service resolves effective limits and gates resource creation against them.
// Resolution is read-only and side-effect-free; admission checks count live
// rows on every call rather than caching.
type Service interface {
	Resolve(ctx context.Context, userID uuid.UUID) (Resolution, error)
	CanCreateOrganization(ctx context.Context, userID uuid.UUID) error
	CanCreateProfile(ctx context.Context, userID, orgID uuid.UUID) error
	CanCreateProduct(ctx context.Context, userID, orgID uuid.UUID) error
	CanCreateCustomLink(ctx context.Context, userID, profileID uuid.UUID) error
	CanCreateSocialLink(ctx context.Context, userID, profileID uuid.UUID) error
	CanCreateAlert(ctx context.Context, userID, profileID uuid.UUID) error
	CanUploadImages(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ServiceParams configure the entitlement service.
type ServiceParams struct {
	Repo          entitlementsRepository
	Subscriptions currentSubscriptionFinder
	Metrics       *metrics.BillingMetrics
}

type service struct {
	repo    entitlementsRepository
	subs    currentSubscriptionFinder
	metrics *metrics.BillingMetrics
	now     func() time.Time
}

// NewService builds an entitlement resolver.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("entitlements repository required")
	}
	if params.Subscriptions == nil {
		return nil, fmt.Errorf("subscription finder required")
	}
	return &service{
		repo:    params.Repo,
		subs:    params.Subscriptions,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

// Resolve picks the single source of truth for the user's limits:
// active subscription plan, then override row, then hardcoded defaults.
func (s *service) Resolve(ctx context.Context, userID uuid.UUID) (Resolution, error) {
	if userID == uuid.Nil {
		return Resolution{}, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}

	sub, err := s.subs.FindCurrent(ctx, userID, s.now().UTC())
	if err != nil {
		return Resolution{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding current subscription")
	}
	if sub != nil && sub.Plan != nil {
		return Resolution{
			Limits:   limitsFromPlan(sub.Plan),
			Source:   SourceActivePlan,
			PlanSlug: sub.Plan.Slug,
		}, nil
	}

	override, err := s.repo.FindOverride(ctx, userID)
	if err != nil {
		return Resolution{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding limit override")
	}
	if override != nil {
		return Resolution{Limits: limitsFromOverride(override), Source: SourceUserOverride}, nil
	}

	return Resolution{Limits: DefaultLimits(), Source: SourceDefaults}, nil
}

func (s *service) CanCreateOrganization(ctx context.Context, userID uuid.UUID) error {
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountOrganizations(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting organizations")
	}
	return s.admit("organizations", count, res.Limits.MaxOrganizations)
}

func (s *service) CanCreateProfile(ctx context.Context, userID, orgID uuid.UUID) error {
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountProfiles(ctx, orgID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting profiles")
	}
	return s.admit("profiles", count, res.Limits.MaxProfilesPerOrg)
}

func (s *service) CanCreateProduct(ctx context.Context, userID, orgID uuid.UUID) error {
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountProducts(ctx, orgID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting products")
	}
	return s.admit("products", count, res.Limits.MaxProductsPerOrg)
}

func (s *service) CanCreateCustomLink(ctx context.Context, userID, profileID uuid.UUID) error {
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountCustomLinks(ctx, profileID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting custom links")
	}
	return s.admit("custom_links", count, res.Limits.MaxCustomLinksPerProfile)
}

func (s *service) CanCreateSocialLink(ctx context.Context, userID, profileID uuid.UUID) error {
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountSocialLinks(ctx, profileID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting social links")
	}
	return s.admit("social_links", count, res.Limits.MaxSocialLinksPerProfile)
}

func (s *service) CanCreateAlert(ctx context.Context, userID, profileID uuid.UUID) error {
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountAlerts(ctx, profileID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting alerts")
	}
	return s.admit("alerts", count, res.Limits.MaxAlertsPerProfile)
}

func (s *service) CanUploadImages(ctx context.Context, userID uuid.UUID) (bool, error) {
	res, err := s.Resolve(ctx, userID)
	if err != nil {
		return false, err
	}
	return res.Limits.CanUploadImages, nil
}

func (s *service) admit(resource string, count int64, limit int) error {
	if count < int64(limit) {
		return nil
	}
	s.metrics.IncLimitDenial(resource)
	return pkgerrors.New(pkgerrors.CodeLimitReached,
		fmt.Sprintf("%s limit reached (%d)", resource, limit))
}
