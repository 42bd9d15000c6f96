package alerts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// Repository exposes floating alert persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an alerts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new alert.
func (r *Repository) Create(ctx context.Context, alert *models.FloatingAlert) (*models.FloatingAlert, error) {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

// FindByID loads an alert by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FloatingAlert, error) {
	var alert models.FloatingAlert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// ListByProfile returns the profile's alerts, newest first.
func (r *Repository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.FloatingAlert, error) {
	var alerts []models.FloatingAlert
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// Update persists the full alert row.
func (r *Repository) Update(ctx context.Context, alert *models.FloatingAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

// Delete removes the alert.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.FloatingAlert{}, "id = ?", id).Error
}
