package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/internal/organizations"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type profilesRepository interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	FindBySlug(ctx context.Context, orgID uuid.UUID, slug *string) (*models.Profile, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Profile, error)
	HasPrimary(ctx context.Context, orgID uuid.UUID) (bool, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type organizationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	FindBySlug(ctx context.Context, slug string) (*models.Organization, error)
}

type creationGate interface {
	CanCreateProfile(ctx context.Context, userID, orgID uuid.UUID) error
}

// CreateProfileInput captures the fields accepted on creation.
type CreateProfileInput struct {
	Name     string
	Slug     string
	Photo    *string
	JobTitle *string
	Slogan   *string
	Bio      string
}

// UpdateProfileInput captures the allowed fields for mutation.
type UpdateProfileInput struct {
	Name     *string
	Photo    *string
	JobTitle *string
	Slogan   *string
	Bio      *string
	IsActive *bool
}

// Service exposes profile operations.
type Service interface {
	Create(ctx context.Context, userID, orgID uuid.UUID, input CreateProfileInput) (*ProfileDTO, error)
	GetByID(ctx context.Context, userID, profileID uuid.UUID) (*ProfileDTO, error)
	ListByOrganization(ctx context.Context, userID, orgID uuid.UUID) ([]ProfileDTO, error)
	Update(ctx context.Context, userID, profileID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	Delete(ctx context.Context, userID, profileID uuid.UUID) error
	// ResolvePublic serves the rendering layer: organization slug plus an
	// optional profile slug, counting the view.
	ResolvePublic(ctx context.Context, orgSlug string, profileSlug *string) (*ProfileDTO, error)
}

type service struct {
	repo profilesRepository
	orgs organizationReader
	gate creationGate
}

// NewService builds a profiles service with the provided dependencies.
func NewService(repo profilesRepository, orgs organizationReader, gate creationGate) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if orgs == nil {
		return nil, fmt.Errorf("organizations repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("entitlements gate required")
	}
	return &service{repo: repo, orgs: orgs, gate: gate}, nil
}

func (s *service) Create(ctx context.Context, userID, orgID uuid.UUID, input CreateProfileInput) (*ProfileDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := s.loadOwnedOrg(ctx, userID, orgID); err != nil {
		return nil, err
	}
	if err := s.gate.CanCreateProfile(ctx, userID, orgID); err != nil {
		return nil, err
	}

	hasPrimary, err := s.repo.HasPrimary(ctx, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check primary profile")
	}

	profile := &models.Profile{
		OrganizationID: orgID,
		Name:           input.Name,
		Photo:          input.Photo,
		JobTitle:       input.JobTitle,
		Slogan:         input.Slogan,
		Bio:            input.Bio,
		IsPrimary:      !hasPrimary,
		IsActive:       true,
	}
	if hasPrimary {
		// Secondary profiles need a slug to be reachable under the org.
		raw := input.Slug
		if raw == "" {
			raw = input.Name
		}
		slug := organizations.Slugify(raw)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name does not produce a usable slug")
		}
		if _, err := s.repo.FindBySlug(ctx, orgID, &slug); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("profile slug %q already in use", slug))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check profile slug")
		}
		profile.Slug = &slug
	}

	if _, err := s.repo.Create(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}
	return FromModel(profile), nil
}

func (s *service) GetByID(ctx context.Context, userID, profileID uuid.UUID) (*ProfileDTO, error) {
	profile, _, err := s.loadOwnedProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	return FromModel(profile), nil
}

func (s *service) ListByOrganization(ctx context.Context, userID, orgID uuid.UUID) ([]ProfileDTO, error) {
	if _, err := s.loadOwnedOrg(ctx, userID, orgID); err != nil {
		return nil, err
	}
	profiles, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list profiles")
	}
	return FromModels(profiles), nil
}

func (s *service) Update(ctx context.Context, userID, profileID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	profile, _, err := s.loadOwnedProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		profile.Name = *input.Name
	}
	if input.Photo != nil {
		profile.Photo = input.Photo
	}
	if input.JobTitle != nil {
		profile.JobTitle = input.JobTitle
	}
	if input.Slogan != nil {
		profile.Slogan = input.Slogan
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.IsActive != nil {
		profile.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(profile), nil
}

func (s *service) Delete(ctx context.Context, userID, profileID uuid.UUID) error {
	profile, _, err := s.loadOwnedProfile(ctx, userID, profileID)
	if err != nil {
		return err
	}
	if profile.IsPrimary {
		return pkgerrors.New(pkgerrors.CodeConflict, "cannot delete the primary profile")
	}
	if err := s.repo.Delete(ctx, profileID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete profile")
	}
	return nil
}

func (s *service) ResolvePublic(ctx context.Context, orgSlug string, profileSlug *string) (*ProfileDTO, error) {
	org, err := s.orgs.FindBySlug(ctx, orgSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load organization")
	}
	if !org.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
	}

	profile, err := s.repo.FindBySlug(ctx, org.ID, profileSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if !profile.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}

	if err := s.repo.IncrementViews(ctx, profile.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count view")
	}
	profile.ViewsCount++
	return FromModel(profile), nil
}

func (s *service) loadOwnedOrg(ctx context.Context, userID, orgID uuid.UUID) (*models.Organization, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load organization")
	}
	if org.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "organization belongs to another user")
	}
	return org, nil
}

func (s *service) loadOwnedProfile(ctx context.Context, userID, profileID uuid.UUID) (*models.Profile, *models.Organization, error) {
	profile, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	org, err := s.loadOwnedOrg(ctx, userID, profile.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	return profile, org, nil
}
