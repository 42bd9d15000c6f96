package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// Repository exposes profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new profile.
func (r *Repository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindByID loads a profile by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindBySlug resolves a profile within an organization. A nil slug resolves
// the primary profile, which is stored with a null slug.
func (r *Repository) FindBySlug(ctx context.Context, orgID uuid.UUID, slug *string) (*models.Profile, error) {
	query := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if slug == nil {
		query = query.Where("slug IS NULL")
	} else {
		query = query.Where("slug = ?", *slug)
	}
	var profile models.Profile
	if err := query.First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListByOrganization returns the organization's profiles, primary first.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("is_primary DESC, created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

// HasPrimary reports whether the organization already has a primary profile.
func (r *Repository) HasPrimary(ctx context.Context, orgID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("organization_id = ? AND is_primary", orgID).
		Count(&count).Error
	return count > 0, err
}

// Update persists the full profile row.
func (r *Repository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete soft-deletes the profile.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id).Error
}

// IncrementViews bumps the public view counter without touching updated_at.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}
