package accounts

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

type passthroughTxRunner struct{}

func (passthroughTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepo struct {
	byEmail map[string]*models.User
	created *models.User
	lastDTO users.CreateUserDTO
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	s.lastDTO = dto
	user := dto.ToModel()
	user.ID = uuid.New()
	s.created = user
	if s.byEmail == nil {
		s.byEmail = map[string]*models.User{}
	}
	s.byEmail[user.Email] = user
	return user, nil
}

type stubBilling struct {
	lastUserID uuid.UUID
	lastParams billing.RenewParams
	sub        *models.Subscription
	err        error
}

func (s *stubBilling) RenewOrCreate(_ context.Context, userID uuid.UUID, params billing.RenewParams) (*models.Subscription, error) {
	s.lastUserID = userID
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	if s.sub != nil {
		return s.sub, nil
	}
	return &models.Subscription{ID: uuid.New(), UserID: userID}, nil
}

func newTestService(t *testing.T, repo *stubUserRepo, bill *stubBilling) *service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:      logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		DB:          passthroughTxRunner{},
		Users:       repo,
		Billing:     bill,
		RepoFactory: func(*gorm.DB) userRepository { return repo },
	})
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return impl
}

func TestCreateAccountDefaultsNameAndPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo, nil)

	result, err := svc.CreateAccount(context.Background(), CreateAccountParams{
		Email: " Maria.Lopez@Example.COM ",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria.lopez@example.com", result.User.Email)
	assert.Equal(t, "maria.lopez", result.User.Name)
	require.Len(t, result.GeneratedPassword, GeneratedPasswordLength)

	// The generated plaintext verifies against the stored hash.
	ok, err := security.VerifyPassword(result.GeneratedPassword, repo.lastDTO.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotNil(t, repo.lastDTO.EmailVerifiedAt)
	assert.Equal(t, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), *repo.lastDTO.EmailVerifiedAt)
}

func TestCreateAccountKeepsProvidedCredentials(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo, nil)

	result, err := svc.CreateAccount(context.Background(), CreateAccountParams{
		Email:    "ops@example.com",
		Name:     "Operations",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "Operations", result.User.Name)
	assert.Empty(t, result.GeneratedPassword)

	ok, err := security.VerifyPassword("s3cret-pass", repo.lastDTO.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateAccountProvisionsInitialSubscription(t *testing.T) {
	repo := &stubUserRepo{}
	bill := &stubBilling{}
	svc := newTestService(t, repo, bill)

	result, err := svc.CreateAccount(context.Background(), CreateAccountParams{
		Email:           "founder@example.com",
		PlanSlug:        "profesional",
		Cycle:           enums.BillingCycleAnnual,
		ReferencePrefix: "CLI-",
		Notes:           "Created via accountctl",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Subscription)
	assert.Equal(t, result.User.ID, bill.lastUserID)
	assert.Equal(t, "profesional", bill.lastParams.PlanSlug)
	assert.Equal(t, enums.BillingCycleAnnual, bill.lastParams.Cycle)
	// Duration is floored to a single cycle when unspecified.
	assert.Equal(t, 1, bill.lastParams.Duration)
	assert.Equal(t, "CLI-", bill.lastParams.ReferencePrefix)
	assert.Equal(t, "Created via accountctl", bill.lastParams.Notes)
}

func TestCreateAccountWithoutPlanSkipsBilling(t *testing.T) {
	repo := &stubUserRepo{}
	bill := &stubBilling{}
	svc := newTestService(t, repo, bill)

	result, err := svc.CreateAccount(context.Background(), CreateAccountParams{Email: "solo@example.com"})
	require.NoError(t, err)
	assert.Nil(t, result.Subscription)
	assert.Equal(t, uuid.Nil, bill.lastUserID)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	existing := &models.User{ID: uuid.New(), Email: "taken@example.com"}
	repo := &stubUserRepo{byEmail: map[string]*models.User{"taken@example.com": existing}}
	svc := newTestService(t, repo, nil)

	_, err := svc.CreateAccount(context.Background(), CreateAccountParams{Email: "Taken@example.com"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestCreateAccountRejectsBadEmail(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, nil)

	for _, email := range []string{"", "no-at-sign", "@example.com", "user@"} {
		_, err := svc.CreateAccount(context.Background(), CreateAccountParams{Email: email})
		require.Error(t, err, "email %q", email)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	}
}

func TestFindByEmailMapsMissingUser(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, nil)

	_, err := svc.FindByEmail(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestFindByEmailReturnsUser(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "found@example.com"}
	repo := &stubUserRepo{byEmail: map[string]*models.User{"found@example.com": user}}
	svc := newTestService(t, repo, nil)

	got, err := svc.FindByEmail(context.Background(), "found@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{
		DB:    passthroughTxRunner{},
		Users: &stubUserRepo{},
	})
	require.Error(t, err)

	_, err = NewService(ServiceParams{
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Users:  &stubUserRepo{},
	})
	require.Error(t, err)

	_, err = NewService(ServiceParams{
		Logger:         logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		DB:             passthroughTxRunner{},
		PasswordConfig: config.PasswordConfig{},
	})
	require.Error(t, err)
}
