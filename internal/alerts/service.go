package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/internal/catalog"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type alertsRepository interface {
	Create(ctx context.Context, alert *models.FloatingAlert) (*models.FloatingAlert, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.FloatingAlert, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.FloatingAlert, error)
	Update(ctx context.Context, alert *models.FloatingAlert) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type profileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

type organizationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

type creationGate interface {
	CanCreateAlert(ctx context.Context, userID, profileID uuid.UUID) error
}

// CreateAlertInput captures the fields accepted when scheduling an alert.
type CreateAlertInput struct {
	Type          enums.AlertType
	Title         string
	Message       string
	Icon          string
	Color         string
	LinkURL       string
	LinkText      string
	StartsAt      *time.Time
	EndsAt        *time.Time
	IsDismissible *bool
}

// UpdateAlertInput captures the allowed fields for mutation.
type UpdateAlertInput struct {
	Title         *string
	Message       *string
	Icon          *string
	Color         *string
	LinkURL       *string
	LinkText      *string
	StartsAt      *time.Time
	EndsAt        *time.Time
	IsDismissible *bool
	IsActive      *bool
}

// Service exposes floating alert operations.
type Service interface {
	Create(ctx context.Context, userID, profileID uuid.UUID, input CreateAlertInput) (*AlertDTO, error)
	List(ctx context.Context, userID, profileID uuid.UUID) ([]AlertDTO, error)
	// ListVisible returns only the alerts a public visitor should see now.
	ListVisible(ctx context.Context, profileID uuid.UUID) ([]AlertDTO, error)
	Update(ctx context.Context, userID, alertID uuid.UUID, input UpdateAlertInput) (*AlertDTO, error)
	Delete(ctx context.Context, userID, alertID uuid.UUID) error
}

type service struct {
	repo     alertsRepository
	profiles profileReader
	orgs     organizationReader
	gate     creationGate
	catalog  *catalog.Catalog
	now      func() time.Time
}

// NewService builds an alerts service with the provided dependencies.
func NewService(repo alertsRepository, profiles profileReader, orgs organizationReader, gate creationGate, cat *catalog.Catalog) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("alerts repository required")
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
	return &service{
		repo:     repo,
		profiles: profiles,
		orgs:     orgs,
		gate:     gate,
		catalog:  cat,
		now:      time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, userID, profileID uuid.UUID, input CreateAlertInput) (*AlertDTO, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	alertType := input.Type
	if alertType == "" {
		alertType = enums.AlertTypeInfo
	}
	if !alertType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown alert type %q", input.Type))
	}
	if input.StartsAt != nil && input.EndsAt != nil && !input.EndsAt.After(*input.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at")
	}
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	if err := s.gate.CanCreateAlert(ctx, userID, profileID); err != nil {
		return nil, err
	}

	meta := s.catalog.AlertType(alertType)
	icon := input.Icon
	if icon == "" {
		icon = meta.Icon
	}
	color := input.Color
	if color == "" {
		color = meta.Color
	}
	dismissible := true
	if input.IsDismissible != nil {
		dismissible = *input.IsDismissible
	}

	alert := &models.FloatingAlert{
		ProfileID:     profileID,
		Type:          alertType,
		Title:         input.Title,
		Message:       input.Message,
		Icon:          icon,
		Color:         color,
		LinkURL:       input.LinkURL,
		LinkText:      input.LinkText,
		StartsAt:      input.StartsAt,
		EndsAt:        input.EndsAt,
		IsDismissible: dismissible,
		IsActive:      true,
	}
	if _, err := s.repo.Create(ctx, alert); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create alert")
	}
	return fromModel(alert), nil
}

func (s *service) List(ctx context.Context, userID, profileID uuid.UUID) ([]AlertDTO, error) {
	if err := s.checkProfileOwnership(ctx, userID, profileID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list alerts")
	}
	out := make([]AlertDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListVisible(ctx context.Context, profileID uuid.UUID) ([]AlertDTO, error) {
	rows, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list alerts")
	}
	now := s.now()
	out := make([]AlertDTO, 0, len(rows))
	for i := range rows {
		if rows[i].IsVisible(now) {
			out = append(out, *fromModel(&rows[i]))
		}
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, userID, alertID uuid.UUID, input UpdateAlertInput) (*AlertDTO, error) {
	alert, err := s.loadOwned(ctx, userID, alertID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		alert.Title = *input.Title
	}
	if input.Message != nil {
		alert.Message = *input.Message
	}
	if input.Icon != nil {
		alert.Icon = *input.Icon
	}
	if input.Color != nil {
		alert.Color = *input.Color
	}
	if input.LinkURL != nil {
		alert.LinkURL = *input.LinkURL
	}
	if input.LinkText != nil {
		alert.LinkText = *input.LinkText
	}
	if input.StartsAt != nil {
		alert.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		alert.EndsAt = input.EndsAt
	}
	if input.IsDismissible != nil {
		alert.IsDismissible = *input.IsDismissible
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}
	if alert.StartsAt != nil && alert.EndsAt != nil && !alert.EndsAt.After(*alert.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at")
	}

	if err := s.repo.Update(ctx, alert); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update alert")
	}
	return fromModel(alert), nil
}

func (s *service) Delete(ctx context.Context, userID, alertID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, alertID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, alertID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete alert")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID, alertID uuid.UUID) (*models.FloatingAlert, error) {
	alert, err := s.repo.FindByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "alert not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load alert")
	}
	if err := s.checkProfileOwnership(ctx, userID, alert.ProfileID); err != nil {
		return nil, err
	}
	return alert, nil
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
