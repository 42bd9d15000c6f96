package qr

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

// Defaults applied when a profile has no stored settings.
const (
	DefaultForeground      = "#000000"
	DefaultBackground      = "#FFFFFF"
	DefaultDotStyle        = "square"
	DefaultCornerStyle     = "square"
	DefaultLogoSize        = 60
	DefaultErrorCorrection = "M"
	DefaultSize            = 300
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

type qrRepository interface {
	FindByProfile(ctx context.Context, profileID uuid.UUID) (*models.QRSetting, error)
	Upsert(ctx context.Context, setting *models.QRSetting) error
}

type profileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type organizationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// SettingsInput carries the QR style fields. The update replaces the stored
// row wholesale; zero values fall back to the defaults.
type SettingsInput struct {
	ForegroundColor string
	BackgroundColor string
	DotStyle        string
	CornerStyle     string
	LogoURL         string
	LogoSize        int
	ErrorCorrection string
	Size            int
	UseGradient     bool
	GradientStart   string
	GradientEnd     string
}

// Payload is what a client renders into a QR image: the target URL plus the
// stored style choices.
type Payload struct {
	Target   string            `json:"target"`
	Settings *models.QRSetting `json:"settings"`
}

// Service exposes QR settings and payload building.
type Service interface {
	Get(ctx context.Context, userID, profileID uuid.UUID) (*models.QRSetting, error)
	Put(ctx context.Context, userID, profileID uuid.UUID, input SettingsInput) (*models.QRSetting, error)
	// BuildPayload returns the public URL target and style for a profile.
	BuildPayload(ctx context.Context, profileID uuid.UUID) (*Payload, error)
}

type service struct {
	repo     qrRepository
	profiles profileReader
	orgs     organizationReader
	baseURL  string
}

// NewService builds a qr service with the provided dependencies. baseURL is
// the public site root the codes point at.
func NewService(repo qrRepository, profiles profileReader, orgs organizationReader, baseURL string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("qr repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if orgs == nil {
		return nil, fmt.Errorf("organizations repository required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		orgs:     orgs,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func defaultSetting(profileID uuid.UUID) *models.QRSetting {
	return &models.QRSetting{
		ProfileID:       profileID,
		ForegroundColor: DefaultForeground,
		BackgroundColor: DefaultBackground,
		DotStyle:        DefaultDotStyle,
		CornerStyle:     DefaultCornerStyle,
		LogoSize:        DefaultLogoSize,
		ErrorCorrection: DefaultErrorCorrection,
		Size:            DefaultSize,
	}
}

func (s *service) Get(ctx context.Context, userID, profileID uuid.UUID) (*models.QRSetting, error) {
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	setting, err := s.repo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load qr settings")
	}
	if setting == nil {
		return defaultSetting(profileID), nil
	}
	return setting, nil
}

func (s *service) Put(ctx context.Context, userID, profileID uuid.UUID, input SettingsInput) (*models.QRSetting, error) {
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}

	setting := defaultSetting(profileID)
	if input.ForegroundColor != "" {
		setting.ForegroundColor = input.ForegroundColor
	}
	if input.BackgroundColor != "" {
		setting.BackgroundColor = input.BackgroundColor
	}
	if input.DotStyle != "" {
		setting.DotStyle = input.DotStyle
	}
	if input.CornerStyle != "" {
		setting.CornerStyle = input.CornerStyle
	}
	setting.LogoURL = input.LogoURL
	if input.LogoSize > 0 {
		setting.LogoSize = input.LogoSize
	}
	if input.ErrorCorrection != "" {
		setting.ErrorCorrection = strings.ToUpper(input.ErrorCorrection)
	}
	if input.Size > 0 {
		setting.Size = input.Size
	}
	setting.UseGradient = input.UseGradient
	setting.GradientStart = input.GradientStart
	setting.GradientEnd = input.GradientEnd

	if err := validateSetting(setting); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save qr settings")
	}
	return setting, nil
}

func (s *service) BuildPayload(ctx context.Context, profileID uuid.UUID) (*Payload, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	org, err := s.orgs.FindByID(ctx, profile.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load organization")
	}

	target := s.baseURL + "/" + org.Slug
	if profile.Slug != nil {
		target += "/" + *profile.Slug
	}

	setting, err := s.repo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load qr settings")
	}
	if setting == nil {
		setting = defaultSetting(profileID)
	}
	return &Payload{Target: target, Settings: setting}, nil
}

func validateSetting(s *models.QRSetting) error {
	switch s.ErrorCorrection {
	case "L", "M", "Q", "H":
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "error correction must be one of L, M, Q, H")
	}
	if s.Size < 100 || s.Size > 2000 {
		return pkgerrors.New(pkgerrors.CodeValidation, "size must be between 100 and 2000 pixels")
	}
	if !hexColorPattern.MatchString(s.ForegroundColor) || !hexColorPattern.MatchString(s.BackgroundColor) {
		return pkgerrors.New(pkgerrors.CodeValidation, "colors must be #RRGGBB or #RRGGBBAA")
	}
	if s.UseGradient && (!hexColorPattern.MatchString(s.GradientStart) || !hexColorPattern.MatchString(s.GradientEnd)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "gradient colors must be #RRGGBB or #RRGGBBAA")
	}
	return nil
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
