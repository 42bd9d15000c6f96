package links

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// Repository exposes persistence for both social and custom links.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a links repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) CreateSocial(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error) {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *Repository) FindSocialByID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error) {
	var link models.SocialLink
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *Repository) ListSocialByProfile(ctx context.Context, profileID uuid.UUID) ([]models.SocialLink, error) {
	var out []models.SocialLink
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("sort_order ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) UpdateSocial(ctx context.Context, link *models.SocialLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *Repository) DeleteSocial(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SocialLink{}, "id = ?", id).Error
}

func (r *Repository) CreateCustom(ctx context.Context, link *models.CustomLink) (*models.CustomLink, error) {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *Repository) FindCustomByID(ctx context.Context, id uuid.UUID) (*models.CustomLink, error) {
	var link models.CustomLink
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *Repository) ListCustomByProfile(ctx context.Context, profileID uuid.UUID) ([]models.CustomLink, error) {
	var out []models.CustomLink
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("sort_order ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) UpdateCustom(ctx context.Context, link *models.CustomLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *Repository) DeleteCustom(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CustomLink{}, "id = ?", id).Error
}

// IncrementClicks bumps the click counter without touching updated_at.
func (r *Repository) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CustomLink{}).
		Where("id = ?", id).
		UpdateColumn("clicks_count", gorm.Expr("clicks_count + 1")).Error
}
