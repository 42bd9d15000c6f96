package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/pagination"
)

type subscriptionsRepository interface {
	FindCurrent(ctx context.Context, userID uuid.UUID, now time.Time) (*models.Subscription, error)
	ListByUserPage(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
}

// Service exposes read and lifecycle operations on the subscription ledger.
// Creation and renewal live in the billing workflow, not here.
type Service interface {
	GetCurrent(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (*SummaryDTO, error)
	ListHistory(ctx context.Context, userID uuid.UUID, page pagination.Params) (*HistoryPage, error)
	Cancel(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error)
}

type service struct {
	repo subscriptionsRepository
	now  func() time.Time
}

// SubscriptionDTO is the API representation of one ledger entry.
type SubscriptionDTO struct {
	ID               uuid.UUID                `json:"id"`
	PlanID           uuid.UUID                `json:"plan_id"`
	PlanName         string                   `json:"plan_name"`
	PlanSlug         string                   `json:"plan_slug"`
	BillingCycle     enums.BillingCycle       `json:"billing_cycle"`
	AmountPaid       decimal.Decimal          `json:"amount_paid"`
	Currency         string                   `json:"currency"`
	Status           enums.SubscriptionStatus `json:"status"`
	StartsAt         time.Time                `json:"starts_at"`
	EndsAt           *time.Time               `json:"ends_at,omitempty"`
	CancelledAt      *time.Time               `json:"cancelled_at,omitempty"`
	PaymentMethod    string                   `json:"payment_method"`
	PaymentReference string                   `json:"payment_reference"`
	Notes            string                   `json:"notes,omitempty"`
	DaysRemaining    int                      `json:"days_remaining"`
}

// HistoryPage is one cursor page of a user's subscription history.
type HistoryPage struct {
	Subscriptions []SubscriptionDTO `json:"subscriptions"`
	NextCursor    string            `json:"next_cursor,omitempty"`
}

// SummaryDTO is the dashboard widget payload.
type SummaryDTO struct {
	HasSubscription bool                     `json:"has_subscription"`
	PlanName        string                   `json:"plan_name,omitempty"`
	PlanSlug        string                   `json:"plan_slug,omitempty"`
	BillingCycle    enums.BillingCycle       `json:"billing_cycle,omitempty"`
	Status          enums.SubscriptionStatus `json:"status,omitempty"`
	DaysRemaining   int                      `json:"days_remaining"`
	EndsAt          *time.Time               `json:"ends_at,omitempty"`
}

// NewService builds a subscription ledger service.
func NewService(repo subscriptionsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscription repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// DaysRemaining returns the whole days until the subscription ends, never
// negative. Open-ended subscriptions report zero.
func DaysRemaining(sub *models.Subscription, now time.Time) int {
	if sub == nil || sub.EndsAt == nil {
		return 0
	}
	days := int(sub.EndsAt.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// AppendNote concatenates a new note line onto existing notes, preserving
// everything already recorded.
func AppendNote(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

func (s *service) GetCurrent(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	now := s.now().UTC()
	sub, err := s.repo.FindCurrent(ctx, userID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding current subscription")
	}
	if sub == nil {
		return nil, nil
	}
	dto := toDTO(sub, now)
	return &dto, nil
}

func (s *service) GetSummary(ctx context.Context, userID uuid.UUID) (*SummaryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	now := s.now().UTC()
	sub, err := s.repo.FindCurrent(ctx, userID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding current subscription")
	}
	if sub == nil {
		return &SummaryDTO{}, nil
	}

	summary := &SummaryDTO{
		HasSubscription: true,
		BillingCycle:    sub.BillingCycle,
		Status:          sub.Status,
		DaysRemaining:   DaysRemaining(sub, now),
		EndsAt:          sub.EndsAt,
	}
	if sub.Plan != nil {
		summary.PlanName = sub.Plan.Name
		summary.PlanSlug = sub.Plan.Slug
	}
	return summary, nil
}

func (s *service) ListHistory(ctx context.Context, userID uuid.UUID, page pagination.Params) (*HistoryPage, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(page.Limit)

	rows, err := s.repo.ListByUserPage(ctx, userID, cursor, pagination.LimitWithBuffer(page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing subscription history")
	}

	result := &HistoryPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	now := s.now().UTC()
	result.Subscriptions = make([]SubscriptionDTO, 0, len(rows))
	for i := range rows {
		result.Subscriptions = append(result.Subscriptions, toDTO(&rows[i], now))
	}
	return result, nil
}

func (s *service) Cancel(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	now := s.now().UTC()
	sub, err := s.repo.FindCurrent(ctx, userID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding current subscription")
	}
	if sub == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active subscription to cancel")
	}
	if !sub.Status.CanTransitionTo(enums.SubscriptionStatusCancelled) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("subscription in status %s cannot be cancelled", sub.Status))
	}

	sub.Status = enums.SubscriptionStatusCancelled
	sub.CancelledAt = &now
	sub.Notes = AppendNote(sub.Notes, "Cancelled on "+now.Format("2006-01-02 15:04:05"))

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancelling subscription")
	}
	dto := toDTO(sub, now)
	return &dto, nil
}

func toDTO(sub *models.Subscription, now time.Time) SubscriptionDTO {
	dto := SubscriptionDTO{
		ID:               sub.ID,
		PlanID:           sub.PlanID,
		BillingCycle:     sub.BillingCycle,
		AmountPaid:       sub.AmountPaid,
		Currency:         sub.Currency,
		Status:           sub.Status,
		StartsAt:         sub.StartsAt,
		EndsAt:           sub.EndsAt,
		CancelledAt:      sub.CancelledAt,
		PaymentMethod:    sub.PaymentMethod,
		PaymentReference: sub.PaymentReference,
		Notes:            sub.Notes,
		DaysRemaining:    DaysRemaining(sub, now),
	}
	if sub.Plan != nil {
		dto.PlanName = sub.Plan.Name
		dto.PlanSlug = sub.Plan.Slug
	}
	return dto
}
