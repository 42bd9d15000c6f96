package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/internal/billing"
	"github.com/conectlink/conectlink-backend/internal/users"
	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/security"
)

// GeneratedPasswordLength is used when no password is supplied.
const GeneratedPasswordLength = 12

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type billingService interface {
	RenewOrCreate(ctx context.Context, userID uuid.UUID, params billing.RenewParams) (*models.Subscription, error)
}

// CreateAccountParams describe one provisioning request.
type CreateAccountParams struct {
	Email string
	// Name defaults to the part of the email before the '@'.
	Name string
	// Password is generated when empty; the plaintext is returned once so the
	// operator can hand it off.
	Password string
	// PlanSlug, when set, provisions an initial subscription.
	PlanSlug string
	Cycle    enums.BillingCycle
	Duration int
	// ReferencePrefix and Notes are forwarded to the subscription workflow.
	ReferencePrefix string
	Notes           string
}

// CreateAccountResult carries the provisioned user and, when generated, the
// one-time plaintext password.
type CreateAccountResult struct {
	User              *models.User
	GeneratedPassword string
	Subscription      *models.Subscription
}

// Service provisions accounts and resolves users for operator tooling.
type Service interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (*CreateAccountResult, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ServiceParams configure the accounts service.
type ServiceParams struct {
	Logger         *logger.Logger
	DB             txRunner
	Users          userRepository
	Billing        billingService
	PasswordConfig config.PasswordConfig
	// RepoFactory rebinds the user repository inside the provisioning
	// transaction. Defaults to the production repository.
	RepoFactory func(tx *gorm.DB) userRepository
}

type service struct {
	logg        *logger.Logger
	db          txRunner
	users       userRepository
	billing     billingService
	passwordCfg config.PasswordConfig
	repoFactory func(tx *gorm.DB) userRepository
	now         func() time.Time
}

// NewService builds an accounts service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	factory := params.RepoFactory
	if factory == nil {
		factory = func(tx *gorm.DB) userRepository { return users.NewRepository(tx) }
	}
	return &service{
		logg:        params.Logger,
		db:          params.DB,
		users:       params.Users,
		billing:     params.Billing,
		passwordCfg: params.PasswordConfig,
		repoFactory: factory,
		now:         time.Now,
	}, nil
}

func (s *service) CreateAccount(ctx context.Context, params CreateAccountParams) (*CreateAccountResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = email[:at]
	}

	password := params.Password
	generated := ""
	if password == "" {
		temp, err := security.GenerateTempPassword(GeneratedPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
		}
		password = temp
		generated = temp
	}
	passwordHash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	verifiedAt := s.now().UTC()
	var user *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("email %s already registered", email))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking email")
		}

		created, err := repo.Create(ctx, users.CreateUserDTO{
			Email:           email,
			PasswordHash:    passwordHash,
			Name:            name,
			EmailVerifiedAt: &verifiedAt,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CreateAccountResult{User: user, GeneratedPassword: generated}

	if params.PlanSlug != "" {
		if s.billing == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "billing service not configured")
		}
		duration := params.Duration
		if duration < 1 {
			duration = 1
		}
		sub, err := s.billing.RenewOrCreate(ctx, user.ID, billing.RenewParams{
			PlanSlug:        params.PlanSlug,
			Cycle:           params.Cycle,
			Duration:        duration,
			ReferencePrefix: params.ReferencePrefix,
			Notes:           params.Notes,
		})
		if err != nil {
			return nil, err
		}
		result.Subscription = sub
	}

	logCtx := s.logg.WithFields(s.logg.WithUserID(ctx, user.ID.String()), map[string]any{
		"email": email,
		"plan":  params.PlanSlug,
	})
	s.logg.Info(logCtx, "account provisioned")

	return result, nil
}

// FindByEmail resolves a user for operator tooling. A missing user maps to a
// NotFound error rather than the raw gorm sentinel.
func (s *service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user %s not found", email))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding user")
	}
	return user, nil
}
