package organizations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type organizationsRepository interface {
	Create(ctx context.Context, org *models.Organization) (*models.Organization, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	FindBySlug(ctx context.Context, slug string) (*models.Organization, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type creationGate interface {
	CanCreateOrganization(ctx context.Context, userID uuid.UUID) error
}

// CreateOrganizationInput captures the fields accepted on creation.
type CreateOrganizationInput struct {
	Name        string
	Slug        string
	Type        string
	Description string
	Logo        *string
}

// UpdateOrganizationInput captures the allowed fields for mutation. Nil
// pointers leave the stored value untouched.
type UpdateOrganizationInput struct {
	Name        *string
	Logo        *string
	Type        *string
	Description *string
	IsActive    *bool
}

// Service exposes organization operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrganizationInput) (*OrganizationDTO, error)
	GetByID(ctx context.Context, userID, orgID uuid.UUID) (*OrganizationDTO, error)
	GetBySlug(ctx context.Context, slug string) (*OrganizationDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrganizationDTO, error)
	Update(ctx context.Context, userID, orgID uuid.UUID, input UpdateOrganizationInput) (*OrganizationDTO, error)
	Delete(ctx context.Context, userID, orgID uuid.UUID) error
}

type service struct {
	repo organizationsRepository
	gate creationGate
}

// NewService builds an organizations service with the provided dependencies.
func NewService(repo organizationsRepository, gate creationGate) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("organizations repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("entitlements gate required")
	}
	return &service{repo: repo, gate: gate}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrganizationInput) (*OrganizationDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.gate.CanCreateOrganization(ctx, userID); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Name)
	} else {
		slug = Slugify(slug)
	}
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name does not produce a usable slug")
	}
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slug")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("slug %q already in use", slug))
	}

	orgType := input.Type
	if orgType == "" {
		orgType = "business"
	}
	org := &models.Organization{
		UserID:      userID,
		Name:        input.Name,
		Slug:        slug,
		Logo:        input.Logo,
		Type:        orgType,
		Description: input.Description,
		IsActive:    true,
	}
	if _, err := s.repo.Create(ctx, org); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create organization")
	}
	return FromModel(org), nil
}

func (s *service) GetByID(ctx context.Context, userID, orgID uuid.UUID) (*OrganizationDTO, error) {
	org, err := s.loadOwned(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	return FromModel(org), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*OrganizationDTO, error) {
	org, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load organization")
	}
	return FromModel(org), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrganizationDTO, error) {
	orgs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list organizations")
	}
	return FromModels(orgs), nil
}

func (s *service) Update(ctx context.Context, userID, orgID uuid.UUID, input UpdateOrganizationInput) (*OrganizationDTO, error) {
	org, err := s.loadOwned(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		org.Name = *input.Name
	}
	if input.Logo != nil {
		org.Logo = input.Logo
	}
	if input.Type != nil {
		org.Type = *input.Type
	}
	if input.Description != nil {
		org.Description = *input.Description
	}
	if input.IsActive != nil {
		org.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, org); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update organization")
	}
	return FromModel(org), nil
}

func (s *service) Delete(ctx context.Context, userID, orgID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, orgID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orgID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete organization")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID, orgID uuid.UUID) (*models.Organization, error) {
	org, err := s.repo.FindByID(ctx, orgID)
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
