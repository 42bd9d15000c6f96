package vcard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type vcardRepository interface {
	FindByProfile(ctx context.Context, profileID uuid.UUID) (*models.VCardSetting, error)
	Upsert(ctx context.Context, setting *models.VCardSetting) error
}

type profileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type organizationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// SettingsInput carries the full set of contact card fields. The update
// replaces the stored row wholesale, mirroring a settings form submit.
type SettingsInput struct {
	FirstName    string
	LastName     string
	Organization string
	JobTitle     string
	Email        string
	Phone        string
	PhoneWork    string
	Website      string
	Street       string
	City         string
	State        string
	PostalCode   string
	Country      string
	Note         string
	IsEnabled    bool
}

// Service exposes vCard settings and rendering.
type Service interface {
	Get(ctx context.Context, userID, profileID uuid.UUID) (*models.VCardSetting, error)
	Put(ctx context.Context, userID, profileID uuid.UUID, input SettingsInput) (*models.VCardSetting, error)
	// RenderPublic returns the vCard document for a public profile download.
	RenderPublic(ctx context.Context, profileID uuid.UUID) (string, error)
}

type service struct {
	repo     vcardRepository
	profiles profileReader
	orgs     organizationReader
}

// NewService builds a vcard service with the provided dependencies.
func NewService(repo vcardRepository, profiles profileReader, orgs organizationReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vcard repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if orgs == nil {
		return nil, fmt.Errorf("organizations repository required")
	}
	return &service{repo: repo, profiles: profiles, orgs: orgs}, nil
}

func (s *service) Get(ctx context.Context, userID, profileID uuid.UUID) (*models.VCardSetting, error) {
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	setting, err := s.repo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vcard settings")
	}
	if setting == nil {
		// An unset profile reads back as the disabled default.
		return &models.VCardSetting{ProfileID: profileID}, nil
	}
	return setting, nil
}

func (s *service) Put(ctx context.Context, userID, profileID uuid.UUID, input SettingsInput) (*models.VCardSetting, error) {
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}

	setting := &models.VCardSetting{
		ProfileID:    profileID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Organization: input.Organization,
		JobTitle:     input.JobTitle,
		Email:        input.Email,
		Phone:        input.Phone,
		PhoneWork:    input.PhoneWork,
		Website:      input.Website,
		Street:       input.Street,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		Note:         input.Note,
		IsEnabled:    input.IsEnabled,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save vcard settings")
	}
	return setting, nil
}

func (s *service) RenderPublic(ctx context.Context, profileID uuid.UUID) (string, error) {
	setting, err := s.repo.FindByProfile(ctx, profileID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vcard settings")
	}
	if setting == nil || !setting.IsEnabled {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "contact card not available")
	}
	return Render(setting), nil
}

func (s *service) checkProfileOwnership(ctx context.Context, userID, profileID uuid.UUID) error {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	org, err := s.orgs.FindByID(ctx, profile.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load organization")
	}
	if org.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "profile belongs to another user")
	}
	return nil
}
