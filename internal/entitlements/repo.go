package entitlements

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// Repository reads the override rows and usage counts that admission checks need.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an entitlement repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOverride returns the user's limit override row, or nil when none exists.
func (r *Repository) FindOverride(ctx context.Context, userID uuid.UUID) (*models.UserLimit, error) {
	var row models.UserLimit
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpsertOverride creates or replaces the user's limit override row.
func (r *Repository) UpsertOverride(ctx context.Context, row *models.UserLimit) error {
	existing, err := r.FindOverride(ctx, row.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	}
	return r.db.WithContext(ctx).Save(row).Error
}

// CountOrganizations counts a user's live organizations.
func (r *Repository) CountOrganizations(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountProfiles counts live profiles in an organization.
func (r *Repository) CountProfiles(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	return count, err
}

// CountProducts counts products across all profiles of an organization. The
// product limit is scoped to the organization, not the individual profile.
func (r *Repository) CountProducts(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("profile_id IN (?)", r.db.Model(&models.Profile{}).Select("id").Where("organization_id = ?", orgID)).
		Count(&count).Error
	return count, err
}

// CountCustomLinks counts a profile's custom links.
func (r *Repository) CountCustomLinks(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomLink{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error
	return count, err
}

// CountSocialLinks counts a profile's social links.
func (r *Repository) CountSocialLinks(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SocialLink{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error
	return count, err
}

// CountAlerts counts a profile's floating alerts.
func (r *Repository) CountAlerts(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FloatingAlert{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error
	return count, err
}
