package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/internal/plans"
	"github.com/conectlink/conectlink-backend/internal/subscriptions"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/metrics"
)

// DefaultReferencePrefix marks renewals performed through the service API.
const DefaultReferencePrefix = "RENEW-"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type subscriptionsTxRepo interface {
	LockUserForRenewal(ctx context.Context, userID uuid.UUID) error
	FindCurrent(ctx context.Context, userID uuid.UUID, now time.Time) (*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error)
}

type plansTxRepo interface {
	FindBySlug(ctx context.Context, slug string) (*models.SubscriptionPlan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error)
}

type usersTxRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TxRepositories bundles the transaction-scoped repositories the workflow touches.
type TxRepositories struct {
	Subscriptions subscriptionsTxRepo
	Plans         plansTxRepo
	Users         usersTxRepo
}

// RepoFactory binds repositories to the workflow's transaction.
type RepoFactory func(tx *gorm.DB) TxRepositories

// RenewParams describe one renewal or creation request.
type RenewParams struct {
	// PlanSlug selects the target plan. Empty falls back to the current
	// subscription's plan; having neither is an error.
	PlanSlug string
	// Cycle selects the billing cycle. Empty falls back to the current
	// subscription's cycle, then to annual.
	Cycle enums.BillingCycle
	// Duration is the number of cycles purchased. Must be at least 1.
	Duration int
	// Extend chains the new period onto the unexpired remainder of the
	// current subscription instead of retiring it.
	Extend bool
	// ReferencePrefix tags the generated payment reference. Defaults to
	// DefaultReferencePrefix.
	ReferencePrefix string
	// Notes is recorded on the new subscription row.
	Notes string
}

// Service runs the renewal/creation workflow.
type Service interface {
	RenewOrCreate(ctx context.Context, userID uuid.UUID, params RenewParams) (*models.Subscription, error)
}

// ServiceParams configure the billing workflow service.
type ServiceParams struct {
	Logger      *logger.Logger
	DB          txRunner
	RepoFactory RepoFactory
	Metrics     *metrics.BillingMetrics
}

type service struct {
	logg        *logger.Logger
	db          txRunner
	repoFactory RepoFactory
	metrics     *metrics.BillingMetrics
	now         func() time.Time
}

// DefaultRepoFactory builds the production repositories on the workflow's transaction.
func DefaultRepoFactory(tx *gorm.DB) TxRepositories {
	return TxRepositories{
		Subscriptions: subscriptions.NewRepository(tx),
		Plans:         plans.NewRepository(tx),
		Users:         newUserReader(tx),
	}
}

// NewService builds the renewal workflow service.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	factory := params.RepoFactory
	if factory == nil {
		factory = DefaultRepoFactory
	}
	return &service{
		logg:        params.Logger,
		db:          params.DB,
		repoFactory: factory,
		metrics:     params.Metrics,
		now:         time.Now,
	}, nil
}

// RenewOrCreate creates a subscription for the user, retiring or chaining
// onto the current one. The whole read-expire-insert sequence runs in one
// transaction with the user's row locked so concurrent renewals serialize.
func (s *service) RenewOrCreate(ctx context.Context, userID uuid.UUID, params RenewParams) (*models.Subscription, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	if params.Duration < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be at least 1")
	}
	if params.Cycle != "" && !params.Cycle.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid billing cycle %q", params.Cycle))
	}

	var created *models.Subscription
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repos := s.repoFactory(tx)

		if _, err := repos.Users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding user")
		}

		if err := repos.Subscriptions.LockUserForRenewal(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "locking user for renewal")
		}

		now := s.now().UTC()
		current, err := repos.Subscriptions.FindCurrent(ctx, userID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding current subscription")
		}

		plan, err := s.resolvePlan(ctx, repos.Plans, current, params.PlanSlug)
		if err != nil {
			return err
		}

		cycle := resolveCycle(current, params.Cycle)
		startsAt := resolveStart(current, params.Extend, now)
		endsAt := AddCyclePeriods(startsAt, cycle, params.Duration)
		amount := plans.PriceForCycle(plan, cycle).Mul(decimal.NewFromInt(int64(params.Duration)))

		if current != nil && !params.Extend {
			current.Status = enums.SubscriptionStatusExpired
			current.Notes = subscriptions.AppendNote(current.Notes, "Renewed on "+now.Format("2006-01-02 15:04:05"))
			if err := repos.Subscriptions.Update(ctx, current); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "expiring previous subscription")
			}
		}

		prefix := params.ReferencePrefix
		if prefix == "" {
			prefix = DefaultReferencePrefix
		}
		reference, err := NewPaymentReference(prefix)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating payment reference")
		}

		sub := &models.Subscription{
			UserID:           userID,
			PlanID:           plan.ID,
			BillingCycle:     cycle,
			AmountPaid:       amount,
			Currency:         plan.Currency,
			Status:           enums.SubscriptionStatusActive,
			StartsAt:         startsAt,
			EndsAt:           &endsAt,
			PaymentMethod:    "manual",
			PaymentReference: reference,
			Notes:            params.Notes,
		}
		if _, err := repos.Subscriptions.Create(ctx, sub); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating subscription")
		}
		sub.Plan = plan
		created = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	mode := "renew"
	if params.Extend {
		mode = "extend"
	}
	s.metrics.IncRenewal(created.BillingCycle.String(), mode)

	logCtx := s.logg.WithFields(s.logg.WithUserID(ctx, userID.String()), map[string]any{
		"plan":     created.Plan.Slug,
		"cycle":    created.BillingCycle.String(),
		"duration": params.Duration,
		"extend":   params.Extend,
	})
	s.logg.Info(logCtx, "subscription renewed")

	return created, nil
}

func (s *service) resolvePlan(ctx context.Context, repo plansTxRepo, current *models.Subscription, slug string) (*models.SubscriptionPlan, error) {
	if slug != "" {
		plan, err := repo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("plan %q not found", slug))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding plan")
		}
		return plan, nil
	}

	if current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan is required: user has no current subscription")
	}
	if current.Plan != nil {
		return current.Plan, nil
	}
	plan, err := repo.FindByID(ctx, current.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plan for current subscription no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding plan")
	}
	return plan, nil
}

func resolveCycle(current *models.Subscription, explicit enums.BillingCycle) enums.BillingCycle {
	if explicit != "" {
		return explicit
	}
	if current != nil && current.BillingCycle.IsValid() {
		return current.BillingCycle
	}
	return enums.BillingCycleAnnual
}

func resolveStart(current *models.Subscription, extend bool, now time.Time) time.Time {
	if extend && current != nil && current.EndsAt != nil && current.EndsAt.After(now) {
		return *current.EndsAt
	}
	return now
}

// AddCyclePeriods advances a date by duration billing cycles using calendar
// arithmetic: months for sub-annual cycles, years for annual. Month-length
// variation and leap years follow the calendar rather than a day constant.
func AddCyclePeriods(start time.Time, cycle enums.BillingCycle, duration int) time.Time {
	if cycle == enums.BillingCycleAnnual {
		return start.AddDate(duration, 0, 0)
	}
	return start.AddDate(0, cycle.Months()*duration, 0)
}

type userReader struct {
	db *gorm.DB
}

func newUserReader(db *gorm.DB) *userReader {
	return &userReader{db: db}
}

func (r *userReader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
