package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/conectlink/conectlink-backend/pkg/enums"
)

// Subscription is one entry in a user's subscription history. AmountPaid and
// Currency snapshot the plan pricing at creation time and are never recomputed
// when the plan is edited later.
type Subscription struct {
	ID               uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	PlanID           uuid.UUID                `gorm:"column:plan_id;type:uuid;not null"`
	BillingCycle     enums.BillingCycle       `gorm:"column:billing_cycle;not null"`
	AmountPaid       decimal.Decimal          `gorm:"column:amount_paid;type:numeric(10,2);not null"`
	Currency         string                   `gorm:"column:currency;not null"`
	Status           enums.SubscriptionStatus `gorm:"column:status;not null;default:'pending'"`
	StartsAt         time.Time                `gorm:"column:starts_at;not null"`
	EndsAt           *time.Time               `gorm:"column:ends_at"`
	CancelledAt      *time.Time               `gorm:"column:cancelled_at"`
	TrialEndsAt      *time.Time               `gorm:"column:trial_ends_at"`
	PaymentMethod    string                   `gorm:"column:payment_method"`
	PaymentReference string                   `gorm:"column:payment_reference"`
	Notes            string                   `gorm:"column:notes"`
	CreatedAt        time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	Plan *SubscriptionPlan `gorm:"foreignKey:PlanID"`
}

// IsCurrent reports whether the record is the user's effective subscription at
// the provided instant: active status with a future or open-ended end date.
func (s *Subscription) IsCurrent(now time.Time) bool {
	if s == nil || s.Status != enums.SubscriptionStatusActive {
		return false
	}
	return s.EndsAt == nil || s.EndsAt.After(now)
}
