package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	"github.com/conectlink/conectlink-backend/pkg/pagination"
)

// Repository exposes subscription ledger persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subscription repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new subscription row.
func (r *Repository) Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// FindCurrent returns the user's effective subscription: the most recently
// created active row whose end date is open or in the future. Returns nil
// without error when the user has none.
func (r *Repository) FindCurrent(ctx context.Context, userID uuid.UUID, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND status = ?", userID, enums.SubscriptionStatusActive).
		Where("ends_at IS NULL OR ends_at > ?", now).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// FindByID returns a subscription with its plan preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByUser returns the user's full subscription history, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	var rows []models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUserPage returns one page of the user's history, newest first,
// keyed on (created_at, id) so a cursor survives concurrent inserts.
func (r *Repository) ListByUserPage(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Subscription, error) {
	query := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var rows []models.Subscription
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists changed fields of an existing subscription.
func (r *Repository) Update(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// LockUserForRenewal takes a row lock on the owning user so concurrent
// renewals serialize. Only Postgres supports FOR UPDATE here; other dialects
// (sqlite in tests) skip the lock and rely on single-writer semantics.
func (r *Repository) LockUserForRenewal(ctx context.Context, userID uuid.UUID) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	var user models.User
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&user).Error
}

// ExpireDue flips active subscriptions whose end date has passed to expired,
// up to limit rows per call so the cron job works in bounded batches. Each
// expired row gets a timestamped note appended, never overwritten.
func (r *Repository) ExpireDue(ctx context.Context, now time.Time, limit int) (int64, error) {
	note := "Expired on " + now.UTC().Format("2006-01-02 15:04:05")
	result := r.db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET status = 'expired', updated_at = ?,
		     notes = CASE WHEN notes IS NULL OR notes = '' THEN ? ELSE notes || ? END
		 WHERE id IN (
		     SELECT id FROM subscriptions
		     WHERE status = 'active' AND ends_at IS NOT NULL AND ends_at <= ?
		     ORDER BY ends_at ASC
		     LIMIT ?
		 )`,
		now, note, "\n"+note, now, limit,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
