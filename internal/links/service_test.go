package links

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

type stubLinksRepo struct {
	social  map[uuid.UUID]*models.SocialLink
	custom  map[uuid.UUID]*models.CustomLink
	clicked []uuid.UUID
}

func newStubLinksRepo() *stubLinksRepo {
	return &stubLinksRepo{
		social: map[uuid.UUID]*models.SocialLink{},
		custom: map[uuid.UUID]*models.CustomLink{},
	}
}

func (s *stubLinksRepo) CreateSocial(_ context.Context, link *models.SocialLink) (*models.SocialLink, error) {
	link.ID = uuid.New()
	s.social[link.ID] = link
	return link, nil
}

func (s *stubLinksRepo) FindSocialByID(_ context.Context, id uuid.UUID) (*models.SocialLink, error) {
	if link, ok := s.social[id]; ok {
		return link, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLinksRepo) ListSocialByProfile(_ context.Context, profileID uuid.UUID) ([]models.SocialLink, error) {
	var out []models.SocialLink
	for _, link := range s.social {
		if link.ProfileID == profileID {
			out = append(out, *link)
		}
	}
	return out, nil
}

func (s *stubLinksRepo) UpdateSocial(_ context.Context, link *models.SocialLink) error {
	s.social[link.ID] = link
	return nil
}

func (s *stubLinksRepo) DeleteSocial(_ context.Context, id uuid.UUID) error {
	delete(s.social, id)
	return nil
}

func (s *stubLinksRepo) CreateCustom(_ context.Context, link *models.CustomLink) (*models.CustomLink, error) {
	link.ID = uuid.New()
	s.custom[link.ID] = link
	return link, nil
}

func (s *stubLinksRepo) FindCustomByID(_ context.Context, id uuid.UUID) (*models.CustomLink, error) {
	if link, ok := s.custom[id]; ok {
		return link, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLinksRepo) ListCustomByProfile(_ context.Context, profileID uuid.UUID) ([]models.CustomLink, error) {
	var out []models.CustomLink
	for _, link := range s.custom {
		if link.ProfileID == profileID {
			out = append(out, *link)
		}
	}
	return out, nil
}

func (s *stubLinksRepo) UpdateCustom(_ context.Context, link *models.CustomLink) error {
	s.custom[link.ID] = link
	return nil
}

func (s *stubLinksRepo) DeleteCustom(_ context.Context, id uuid.UUID) error {
	delete(s.custom, id)
	return nil
}

func (s *stubLinksRepo) IncrementClicks(_ context.Context, id uuid.UUID) error {
	s.clicked = append(s.clicked, id)
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

type stubLinksGate struct {
	socialErr error
	customErr error
}

func (s *stubLinksGate) CanCreateSocialLink(context.Context, uuid.UUID, uuid.UUID) error {
	return s.socialErr
}

func (s *stubLinksGate) CanCreateCustomLink(context.Context, uuid.UUID, uuid.UUID) error {
	return s.customErr
}

type linksFixture struct {
	svc       Service
	repo      *stubLinksRepo
	userID    uuid.UUID
	profileID uuid.UUID
}

func newLinksFixture(t *testing.T, gate *stubLinksGate) *linksFixture {
	t.Helper()
	repo := newStubLinksRepo()
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
	return &linksFixture{svc: svc, repo: repo, userID: userID, profileID: profile.ID}
}

func TestCreateSocialLinkDecoratesFromCatalog(t *testing.T) {
	fx := newLinksFixture(t, &stubLinksGate{})

	dto, err := fx.svc.CreateSocial(context.Background(), fx.userID, fx.profileID, CreateSocialLinkInput{
		Platform: "Instagram",
		URL:      "https://instagram.com/conectlink",
	})
	require.NoError(t, err)

	assert.Equal(t, "instagram", dto.Platform)
	assert.Equal(t, "Instagram", dto.Label)
	assert.NotEmpty(t, dto.Icon)
	assert.NotEmpty(t, dto.Color)
	assert.True(t, dto.IsActive)
}

func TestCreateSocialLinkUnknownPlatform(t *testing.T) {
	fx := newLinksFixture(t, &stubLinksGate{})

	_, err := fx.svc.CreateSocial(context.Background(), fx.userID, fx.profileID, CreateSocialLinkInput{
		Platform: "myspace2",
		URL:      "https://example.com",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateSocialLinkLimitDenied(t *testing.T) {
	gateErr := pkgerrors.New(pkgerrors.CodeLimitReached, "social link limit reached (10)")
	fx := newLinksFixture(t, &stubLinksGate{socialErr: gateErr})

	_, err := fx.svc.CreateSocial(context.Background(), fx.userID, fx.profileID, CreateSocialLinkInput{
		Platform: "facebook",
		URL:      "https://facebook.com/page",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeLimitReached))
}

func TestCreateCustomLinkValidatesURL(t *testing.T) {
	fx := newLinksFixture(t, &stubLinksGate{})

	_, err := fx.svc.CreateCustom(context.Background(), fx.userID, fx.profileID, CreateCustomLinkInput{
		Title: "Menu",
		URL:   "ftp://example.com/menu",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCustomLinkLifecycle(t *testing.T) {
	fx := newLinksFixture(t, &stubLinksGate{})

	dto, err := fx.svc.CreateCustom(context.Background(), fx.userID, fx.profileID, CreateCustomLinkInput{
		Title: "Menu",
		URL:   "https://example.com/menu",
	})
	require.NoError(t, err)

	title := "Carta"
	updated, err := fx.svc.UpdateCustom(context.Background(), fx.userID, dto.ID, UpdateCustomLinkInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Carta", updated.Title)

	require.NoError(t, fx.svc.TrackClick(context.Background(), dto.ID))
	assert.Equal(t, []uuid.UUID{dto.ID}, fx.repo.clicked)

	require.NoError(t, fx.svc.DeleteCustom(context.Background(), fx.userID, dto.ID))
	_, err = fx.svc.UpdateCustom(context.Background(), fx.userID, dto.ID, UpdateCustomLinkInput{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestLinkOwnershipEnforced(t *testing.T) {
	fx := newLinksFixture(t, &stubLinksGate{})
	stranger := uuid.New()

	_, err := fx.svc.CreateSocial(context.Background(), stranger, fx.profileID, CreateSocialLinkInput{
		Platform: "tiktok",
		URL:      "https://tiktok.com/@someone",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = fx.svc.ListCustom(context.Background(), stranger, fx.profileID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestListPublicSkipsInactiveLinks(t *testing.T) {
	fx := newLinksFixture(t, &stubLinksGate{})

	social, err := fx.svc.CreateSocial(context.Background(), fx.userID, fx.profileID, CreateSocialLinkInput{
		Platform: "instagram",
		URL:      "https://instagram.com/conectlink",
	})
	require.NoError(t, err)
	hidden, err := fx.svc.CreateSocial(context.Background(), fx.userID, fx.profileID, CreateSocialLinkInput{
		Platform: "facebook",
		URL:      "https://facebook.com/conectlink",
	})
	require.NoError(t, err)
	off := false
	_, err = fx.svc.UpdateSocial(context.Background(), fx.userID, hidden.ID, UpdateSocialLinkInput{IsActive: &off})
	require.NoError(t, err)

	custom, err := fx.svc.CreateCustom(context.Background(), fx.userID, fx.profileID, CreateCustomLinkInput{
		Title: "Menu",
		URL:   "https://example.com/menu",
	})
	require.NoError(t, err)

	public, err := fx.svc.ListPublic(context.Background(), fx.profileID)
	require.NoError(t, err)
	require.Len(t, public.Social, 1)
	assert.Equal(t, social.ID, public.Social[0].ID)
	require.Len(t, public.Custom, 1)
	assert.Equal(t, custom.ID, public.Custom[0].ID)
}
