package profiles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type stubProfileRepo struct {
	byID    map[uuid.UUID]*models.Profile
	created *models.Profile
	updated *models.Profile
	deleted []uuid.UUID
	views   []uuid.UUID
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byID: map[uuid.UUID]*models.Profile{}}
}

func (s *stubProfileRepo) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	p.ID = uuid.New()
	s.created = p
	s.byID[p.ID] = p
	return p, nil
}

func (s *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfileRepo) FindBySlug(_ context.Context, orgID uuid.UUID, slug *string) (*models.Profile, error) {
	for _, p := range s.byID {
		if p.OrganizationID != orgID {
			continue
		}
		if slug == nil && p.Slug == nil {
			return p, nil
		}
		if slug != nil && p.Slug != nil && *slug == *p.Slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfileRepo) ListByOrganization(_ context.Context, orgID uuid.UUID) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range s.byID {
		if p.OrganizationID == orgID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProfileRepo) HasPrimary(_ context.Context, orgID uuid.UUID) (bool, error) {
	for _, p := range s.byID {
		if p.OrganizationID == orgID && p.IsPrimary {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubProfileRepo) Update(_ context.Context, p *models.Profile) error {
	s.updated = p
	return nil
}

func (s *stubProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProfileRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	s.views = append(s.views, id)
	return nil
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

func (s *stubOrgReader) FindBySlug(_ context.Context, slug string) (*models.Organization, error) {
	for _, org := range s.byID {
		if org.Slug == slug {
			return org, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubProfileGate struct {
	err error
}

func (s *stubProfileGate) CanCreateProfile(context.Context, uuid.UUID, uuid.UUID) error {
	return s.err
}

type profilesFixture struct {
	svc    Service
	repo   *stubProfileRepo
	orgs   *stubOrgReader
	userID uuid.UUID
	org    *models.Organization
}

func newProfilesFixture(t *testing.T, gateErr error) *profilesFixture {
	t.Helper()
	repo := newStubProfileRepo()
	userID := uuid.New()
	org := &models.Organization{ID: uuid.New(), UserID: userID, Slug: "acme", IsActive: true}
	orgs := &stubOrgReader{byID: map[uuid.UUID]*models.Organization{org.ID: org}}
	svc, err := NewService(repo, orgs, &stubProfileGate{err: gateErr})
	require.NoError(t, err)
	return &profilesFixture{svc: svc, repo: repo, orgs: orgs, userID: userID, org: org}
}

func TestCreateFirstProfileBecomesPrimary(t *testing.T) {
	fx := newProfilesFixture(t, nil)

	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Main"})
	require.NoError(t, err)

	assert.True(t, dto.IsPrimary)
	// The primary profile is addressed by the organization slug alone.
	assert.Nil(t, dto.Slug)
}

func TestCreateSecondaryProfileGetsSlug(t *testing.T) {
	fx := newProfilesFixture(t, nil)
	_, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Main"})
	require.NoError(t, err)

	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Equipo Ventas"})
	require.NoError(t, err)

	assert.False(t, dto.IsPrimary)
	require.NotNil(t, dto.Slug)
	assert.Equal(t, "equipo-ventas", *dto.Slug)
}

func TestCreateProfileSlugConflict(t *testing.T) {
	fx := newProfilesFixture(t, nil)
	_, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Main"})
	require.NoError(t, err)
	_, err = fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Team"})
	require.NoError(t, err)

	_, err = fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Team"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestCreateProfileLimitDenied(t *testing.T) {
	gateErr := pkgerrors.New(pkgerrors.CodeLimitReached, "profile limit reached (5)")
	fx := newProfilesFixture(t, gateErr)

	_, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Main"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeLimitReached))
}

func TestCreateProfileForeignOrganization(t *testing.T) {
	fx := newProfilesFixture(t, nil)

	_, err := fx.svc.Create(context.Background(), uuid.New(), fx.org.ID, CreateProfileInput{Name: "Main"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestDeletePrimaryProfileRejected(t *testing.T) {
	fx := newProfilesFixture(t, nil)
	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Main"})
	require.NoError(t, err)

	err = fx.svc.Delete(context.Background(), fx.userID, dto.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Empty(t, fx.repo.deleted)
}

func TestResolvePublicCountsView(t *testing.T) {
	fx := newProfilesFixture(t, nil)
	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Main"})
	require.NoError(t, err)

	got, err := fx.svc.ResolvePublic(context.Background(), "acme", nil)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, got.ID)
	assert.Equal(t, uint(1), got.ViewsCount)
	assert.Equal(t, []uuid.UUID{dto.ID}, fx.repo.views)
}

func TestResolvePublicHidesInactive(t *testing.T) {
	fx := newProfilesFixture(t, nil)
	dto, err := fx.svc.Create(context.Background(), fx.userID, fx.org.ID, CreateProfileInput{Name: "Main"})
	require.NoError(t, err)

	inactive := false
	_, err = fx.svc.Update(context.Background(), fx.userID, dto.ID, UpdateProfileInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = fx.svc.ResolvePublic(context.Background(), "acme", nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
