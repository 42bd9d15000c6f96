package vcard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// Repository exposes vCard settings persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a vcard repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByProfile loads the settings row for a profile. Returns (nil, nil)
// when none exists yet.
func (r *Repository) FindByProfile(ctx context.Context, profileID uuid.UUID) (*models.VCardSetting, error) {
	var setting models.VCardSetting
	err := r.db.WithContext(ctx).First(&setting, "profile_id = ?", profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert creates or replaces the profile's settings row.
func (r *Repository) Upsert(ctx context.Context, setting *models.VCardSetting) error {
	existing, err := r.FindByProfile(ctx, setting.ProfileID)
	if err != nil {
		return err
	}
	if existing != nil {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
	}
	return r.db.WithContext(ctx).Save(setting).Error
}
