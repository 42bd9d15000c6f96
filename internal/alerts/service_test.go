package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type stubAlertsRepo struct {
	byID    map[uuid.UUID]*models.FloatingAlert
	deleted []uuid.UUID
}

func newStubAlertsRepo() *stubAlertsRepo {
	return &stubAlertsRepo{byID: map[uuid.UUID]*models.FloatingAlert{}}
}

func (s *stubAlertsRepo) Create(_ context.Context, alert *models.FloatingAlert) (*models.FloatingAlert, error) {
	alert.ID = uuid.New()
	s.byID[alert.ID] = alert
	return alert, nil
}

func (s *stubAlertsRepo) FindByID(_ context.Context, id uuid.UUID) (*models.FloatingAlert, error) {
	if alert, ok := s.byID[id]; ok {
		return alert, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAlertsRepo) ListByProfile(_ context.Context, profileID uuid.UUID) ([]models.FloatingAlert, error) {
	var out []models.FloatingAlert
	for _, alert := range s.byID {
		if alert.ProfileID == profileID {
			out = append(out, *alert)
		}
	}
	return out, nil
}

func (s *stubAlertsRepo) Update(_ context.Context, alert *models.FloatingAlert) error {
	s.byID[alert.ID] = alert
	return nil
}

func (s *stubAlertsRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubProfileReader struct {
	byID map[uuid.UUID]*models.Profile
}

func (s *stubProfileReader) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubOrgReader struct {
	byID map[uuid.UUID]*models.Organization
}

func (s *stubOrgReader) FindByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	if org, ok := s.byID[id]; ok {
		return org, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubAlertGate struct {
	err error
}

func (s *stubAlertGate) CanCreateAlert(context.Context, uuid.UUID, uuid.UUID) error {
	return s.err
}

type alertsFixture struct {
	svc       *service
	repo      *stubAlertsRepo
	userID    uuid.UUID
	profileID uuid.UUID
}

func newAlertsFixture(t *testing.T, gate *stubAlertGate) *alertsFixture {
	t.Helper()
	repo := newStubAlertsRepo()
	userID := uuid.New()
	org := &models.Organization{ID: uuid.New(), UserID: userID}
	profile := &models.Profile{ID: uuid.New(), OrganizationID: org.ID}
	svc, err := NewService(
		repo,
		&stubProfileReader{byID: map[uuid.UUID]*models.Profile{profile.ID: profile}},
		&stubOrgReader{byID: map[uuid.UUID]*models.Organization{org.ID: org}},
		gate,
		nil,
	)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return &alertsFixture{svc: impl, repo: repo, userID: userID, profileID: profile.ID}
}

func TestCreateAlertFillsCatalogDefaults(t *testing.T) {
	fx := newAlertsFixture(t, &stubAlertGate{})

	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{
		Type:  enums.AlertTypePromo,
		Title: "Oferta de primavera",
	})
	require.NoError(t, err)

	assert.Equal(t, enums.AlertTypePromo, dto.Type)
	assert.Equal(t, "tag", dto.Icon)
	assert.Equal(t, "#10B981", dto.Color)
	assert.True(t, dto.IsDismissible)
	assert.True(t, dto.IsActive)
}

func TestCreateAlertDefaultsToInfo(t *testing.T) {
	fx := newAlertsFixture(t, &stubAlertGate{})

	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{Title: "Aviso"})
	require.NoError(t, err)
	assert.Equal(t, enums.AlertTypeInfo, dto.Type)
}

func TestCreateAlertRejectsInvertedWindow(t *testing.T) {
	fx := newAlertsFixture(t, &stubAlertGate{})
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, err := fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{
		Title:    "Ventana invertida",
		StartsAt: &start,
		EndsAt:   &end,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateAlertLimitDenied(t *testing.T) {
	gateErr := pkgerrors.New(pkgerrors.CodeLimitReached, "alert limit reached (1)")
	fx := newAlertsFixture(t, &stubAlertGate{err: gateErr})

	_, err := fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{Title: "Segundo"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeLimitReached))
}

func TestListVisibleHonorsSchedule(t *testing.T) {
	fx := newAlertsFixture(t, &stubAlertGate{})

	// Live now.
	_, err := fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{Title: "Vigente"})
	require.NoError(t, err)

	// Not started yet.
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{
		Title:    "Futuro",
		StartsAt: &future,
	})
	require.NoError(t, err)

	// Already over.
	pastStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pastEnd := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err = fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{
		Title:    "Vencido",
		StartsAt: &pastStart,
		EndsAt:   &pastEnd,
	})
	require.NoError(t, err)

	visible, err := fx.svc.ListVisible(context.Background(), fx.profileID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Vigente", visible[0].Title)
}

func TestAlertOwnershipEnforced(t *testing.T) {
	fx := newAlertsFixture(t, &stubAlertGate{})
	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.profileID, CreateAlertInput{Title: "Mio"})
	require.NoError(t, err)

	err = fx.svc.Delete(context.Background(), uuid.New(), dto.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	assert.Empty(t, fx.repo.deleted)
}
