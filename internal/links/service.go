package links

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/internal/catalog"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type linksRepository interface {
	CreateSocial(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error)
	FindSocialByID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error)
	ListSocialByProfile(ctx context.Context, profileID uuid.UUID) ([]models.SocialLink, error)
	UpdateSocial(ctx context.Context, link *models.SocialLink) error
	DeleteSocial(ctx context.Context, id uuid.UUID) error
	CreateCustom(ctx context.Context, link *models.CustomLink) (*models.CustomLink, error)
	FindCustomByID(ctx context.Context, id uuid.UUID) (*models.CustomLink, error)
	ListCustomByProfile(ctx context.Context, profileID uuid.UUID) ([]models.CustomLink, error)
	UpdateCustom(ctx context.Context, link *models.CustomLink) error
	DeleteCustom(ctx context.Context, id uuid.UUID) error
	IncrementClicks(ctx context.Context, id uuid.UUID) error
}

type profileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type organizationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

type creationGate interface {
	CanCreateSocialLink(ctx context.Context, userID, profileID uuid.UUID) error
	CanCreateCustomLink(ctx context.Context, userID, profileID uuid.UUID) error
}

// CreateSocialLinkInput captures the fields accepted when adding a social link.
type CreateSocialLinkInput struct {
	Platform  string
	URL       string
	Label     string
	SortOrder int
}

// UpdateSocialLinkInput captures the allowed fields for mutation.
type UpdateSocialLinkInput struct {
	URL       *string
	Label     *string
	SortOrder *int
	IsActive  *bool
}

// CreateCustomLinkInput captures the fields accepted when adding a custom link.
type CreateCustomLinkInput struct {
	Title       string
	URL         string
	Description string
	Icon        string
	Thumbnail   string
	SortOrder   int
}

// UpdateCustomLinkInput captures the allowed fields for mutation.
type UpdateCustomLinkInput struct {
	Title       *string
	URL         *string
	Description *string
	Icon        *string
	Thumbnail   *string
	SortOrder   *int
	IsActive    *bool
}

// Service exposes social and custom link operations for one profile.
type Service interface {
	CreateSocial(ctx context.Context, userID, profileID uuid.UUID, input CreateSocialLinkInput) (*SocialLinkDTO, error)
	ListSocial(ctx context.Context, userID, profileID uuid.UUID) ([]SocialLinkDTO, error)
	UpdateSocial(ctx context.Context, userID, linkID uuid.UUID, input UpdateSocialLinkInput) (*SocialLinkDTO, error)
	DeleteSocial(ctx context.Context, userID, linkID uuid.UUID) error
	CreateCustom(ctx context.Context, userID, profileID uuid.UUID, input CreateCustomLinkInput) (*CustomLinkDTO, error)
	ListCustom(ctx context.Context, userID, profileID uuid.UUID) ([]CustomLinkDTO, error)
	UpdateCustom(ctx context.Context, userID, linkID uuid.UUID, input UpdateCustomLinkInput) (*CustomLinkDTO, error)
	DeleteCustom(ctx context.Context, userID, linkID uuid.UUID) error
	// ListPublic returns the active links of a profile for public rendering.
	// No ownership check is performed.
	ListPublic(ctx context.Context, profileID uuid.UUID) (*PublicLinks, error)
	// TrackClick records an outbound click on a custom link. It is part of
	// the public surface and performs no ownership check.
	TrackClick(ctx context.Context, linkID uuid.UUID) error
}

// PublicLinks bundles what a visitor sees on a profile page.
type PublicLinks struct {
	Social []SocialLinkDTO `json:"social"`
	Custom []CustomLinkDTO `json:"custom"`
}

type service struct {
	repo     linksRepository
	profiles profileReader
	orgs     organizationReader
	gate     creationGate
	catalog  *catalog.Catalog
}

// NewService builds a links service with the provided dependencies.
func NewService(repo linksRepository, profiles profileReader, orgs organizationReader, gate creationGate, cat *catalog.Catalog) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("links repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if orgs == nil {
		return nil, fmt.Errorf("organizations repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("entitlements gate required")
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return &service{repo: repo, profiles: profiles, orgs: orgs, gate: gate, catalog: cat}, nil
}

func (s *service) CreateSocial(ctx context.Context, userID, profileID uuid.UUID, input CreateSocialLinkInput) (*SocialLinkDTO, error) {
	platform := strings.ToLower(strings.TrimSpace(input.Platform))
	if !s.catalog.IsValidPlatform(platform) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown platform %q", input.Platform))
	}
	if err := validateURL(input.URL); err != nil {
		return nil, err
	}
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	if err := s.gate.CanCreateSocialLink(ctx, userID, profileID); err != nil {
		return nil, err
	}

	link := &models.SocialLink{
		ProfileID: profileID,
		Platform:  platform,
		URL:       input.URL,
		Label:     input.Label,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if _, err := s.repo.CreateSocial(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create social link")
	}
	return s.decorateSocial(link), nil
}

func (s *service) ListSocial(ctx context.Context, userID, profileID uuid.UUID) ([]SocialLinkDTO, error) {
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListSocialByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list social links")
	}
	out := make([]SocialLinkDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *s.decorateSocial(&rows[i]))
	}
	return out, nil
}

func (s *service) UpdateSocial(ctx context.Context, userID, linkID uuid.UUID, input UpdateSocialLinkInput) (*SocialLinkDTO, error) {
	link, err := s.repo.FindSocialByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "social link not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load social link")
	}
	if err := s.checkProfileOwnership(ctx, userID, link.ProfileID); err != nil {
		return nil, err
	}

	if input.URL != nil {
		if err := validateURL(*input.URL); err != nil {
			return nil, err
		}
		link.URL = *input.URL
	}
	if input.Label != nil {
		link.Label = *input.Label
	}
	if input.SortOrder != nil {
		link.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		link.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateSocial(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update social link")
	}
	return s.decorateSocial(link), nil
}

func (s *service) DeleteSocial(ctx context.Context, userID, linkID uuid.UUID) error {
	link, err := s.repo.FindSocialByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "social link not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load social link")
	}
	if err := s.checkProfileOwnership(ctx, userID, link.ProfileID); err != nil {
		return err
	}
	if err := s.repo.DeleteSocial(ctx, linkID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete social link")
	}
	return nil
}

func (s *service) CreateCustom(ctx context.Context, userID, profileID uuid.UUID, input CreateCustomLinkInput) (*CustomLinkDTO, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := validateURL(input.URL); err != nil {
		return nil, err
	}
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	if err := s.gate.CanCreateCustomLink(ctx, userID, profileID); err != nil {
		return nil, err
	}

	link := &models.CustomLink{
		ProfileID:   profileID,
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
		Icon:        input.Icon,
		Thumbnail:   input.Thumbnail,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if _, err := s.repo.CreateCustom(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create custom link")
	}
	return customFromModel(link), nil
}

func (s *service) ListCustom(ctx context.Context, userID, profileID uuid.UUID) ([]CustomLinkDTO, error) {
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListCustomByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list custom links")
	}
	out := make([]CustomLinkDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *customFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) UpdateCustom(ctx context.Context, userID, linkID uuid.UUID, input UpdateCustomLinkInput) (*CustomLinkDTO, error) {
	link, err := s.repo.FindCustomByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "custom link not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load custom link")
	}
	if err := s.checkProfileOwnership(ctx, userID, link.ProfileID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		link.Title = *input.Title
	}
	if input.URL != nil {
		if err := validateURL(*input.URL); err != nil {
			return nil, err
		}
		link.URL = *input.URL
	}
	if input.Description != nil {
		link.Description = *input.Description
	}
	if input.Icon != nil {
		link.Icon = *input.Icon
	}
	if input.Thumbnail != nil {
		link.Thumbnail = *input.Thumbnail
	}
	if input.SortOrder != nil {
		link.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		link.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateCustom(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update custom link")
	}
	return customFromModel(link), nil
}

func (s *service) DeleteCustom(ctx context.Context, userID, linkID uuid.UUID) error {
	link, err := s.repo.FindCustomByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "custom link not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load custom link")
	}
	if err := s.checkProfileOwnership(ctx, userID, link.ProfileID); err != nil {
		return err
	}
	if err := s.repo.DeleteCustom(ctx, linkID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete custom link")
	}
	return nil
}

func (s *service) ListPublic(ctx context.Context, profileID uuid.UUID) (*PublicLinks, error) {
	social, err := s.repo.ListSocialByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list social links")
	}
	custom, err := s.repo.ListCustomByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list custom links")
	}
	out := &PublicLinks{
		Social: make([]SocialLinkDTO, 0, len(social)),
		Custom: make([]CustomLinkDTO, 0, len(custom)),
	}
	for i := range social {
		if !social[i].IsActive {
			continue
		}
		out.Social = append(out.Social, *s.decorateSocial(&social[i]))
	}
	for i := range custom {
		if !custom[i].IsActive {
			continue
		}
		out.Custom = append(out.Custom, *customFromModel(&custom[i]))
	}
	return out, nil
}

func (s *service) TrackClick(ctx context.Context, linkID uuid.UUID) error {
	if _, err := s.repo.FindCustomByID(ctx, linkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "custom link not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load custom link")
	}
	if err := s.repo.IncrementClicks(ctx, linkID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count click")
	}
	return nil
}

func (s *service) decorateSocial(link *models.SocialLink) *SocialLinkDTO {
	dto := socialFromModel(link)
	meta := s.catalog.Platform(link.Platform)
	if dto.Label == "" {
		dto.Label = meta.Label
	}
	dto.Icon = meta.Icon
	dto.Color = meta.Color
	return dto
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

func validateURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return pkgerrors.New(pkgerrors.CodeValidation, "url must start with http:// or https://")
	}
	return nil
}
