package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/internal/alerts"
	"github.com/conectlink/conectlink-backend/internal/links"
	"github.com/conectlink/conectlink-backend/internal/products"
	"github.com/conectlink/conectlink-backend/internal/profiles"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type stubPublicProfiles struct {
	profile     *profiles.ProfileDTO
	err         error
	lastOrgSlug string
	lastSlug    *string
}

func (s *stubPublicProfiles) Create(ctx context.Context, userID, orgID uuid.UUID, input profiles.CreateProfileInput) (*profiles.ProfileDTO, error) {
	return nil, nil
}

func (s *stubPublicProfiles) GetByID(ctx context.Context, userID, profileID uuid.UUID) (*profiles.ProfileDTO, error) {
	return nil, nil
}

func (s *stubPublicProfiles) ListByOrganization(ctx context.Context, userID, orgID uuid.UUID) ([]profiles.ProfileDTO, error) {
	return nil, nil
}

func (s *stubPublicProfiles) Update(ctx context.Context, userID, profileID uuid.UUID, input profiles.UpdateProfileInput) (*profiles.ProfileDTO, error) {
	return nil, nil
}

func (s *stubPublicProfiles) Delete(ctx context.Context, userID, profileID uuid.UUID) error {
	return nil
}

func (s *stubPublicProfiles) ResolvePublic(ctx context.Context, orgSlug string, profileSlug *string) (*profiles.ProfileDTO, error) {
	s.lastOrgSlug = orgSlug
	s.lastSlug = profileSlug
	return s.profile, s.err
}

type stubPublicLinks struct {
	public *links.PublicLinks
	lastID uuid.UUID
}

func (s *stubPublicLinks) CreateSocial(ctx context.Context, userID, profileID uuid.UUID, input links.CreateSocialLinkInput) (*links.SocialLinkDTO, error) {
	return nil, nil
}

func (s *stubPublicLinks) ListSocial(ctx context.Context, userID, profileID uuid.UUID) ([]links.SocialLinkDTO, error) {
	return nil, nil
}

func (s *stubPublicLinks) UpdateSocial(ctx context.Context, userID, linkID uuid.UUID, input links.UpdateSocialLinkInput) (*links.SocialLinkDTO, error) {
	return nil, nil
}

func (s *stubPublicLinks) DeleteSocial(ctx context.Context, userID, linkID uuid.UUID) error {
	return nil
}

func (s *stubPublicLinks) CreateCustom(ctx context.Context, userID, profileID uuid.UUID, input links.CreateCustomLinkInput) (*links.CustomLinkDTO, error) {
	return nil, nil
}

func (s *stubPublicLinks) ListCustom(ctx context.Context, userID, profileID uuid.UUID) ([]links.CustomLinkDTO, error) {
	return nil, nil
}

func (s *stubPublicLinks) UpdateCustom(ctx context.Context, userID, linkID uuid.UUID, input links.UpdateCustomLinkInput) (*links.CustomLinkDTO, error) {
	return nil, nil
}

func (s *stubPublicLinks) DeleteCustom(ctx context.Context, userID, linkID uuid.UUID) error {
	return nil
}

func (s *stubPublicLinks) ListPublic(ctx context.Context, profileID uuid.UUID) (*links.PublicLinks, error) {
	s.lastID = profileID
	return s.public, nil
}

func (s *stubPublicLinks) TrackClick(ctx context.Context, linkID uuid.UUID) error {
	s.lastID = linkID
	return nil
}

type stubPublicProducts struct {
	available []products.ProductDTO
}

func (s *stubPublicProducts) Create(ctx context.Context, userID, profileID uuid.UUID, input products.CreateProductInput) (*products.ProductDTO, error) {
	return nil, nil
}

func (s *stubPublicProducts) GetByID(ctx context.Context, userID, productID uuid.UUID) (*products.ProductDTO, error) {
	return nil, nil
}

func (s *stubPublicProducts) ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]products.ProductDTO, error) {
	return nil, nil
}

func (s *stubPublicProducts) ListAvailable(ctx context.Context, profileID uuid.UUID) ([]products.ProductDTO, error) {
	return s.available, nil
}

func (s *stubPublicProducts) Update(ctx context.Context, userID, productID uuid.UUID, input products.UpdateProductInput) (*products.ProductDTO, error) {
	return nil, nil
}

func (s *stubPublicProducts) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}

type stubPublicAlerts struct {
	visible []alerts.AlertDTO
}

func (s *stubPublicAlerts) Create(ctx context.Context, userID, profileID uuid.UUID, input alerts.CreateAlertInput) (*alerts.AlertDTO, error) {
	return nil, nil
}

func (s *stubPublicAlerts) List(ctx context.Context, userID, profileID uuid.UUID) ([]alerts.AlertDTO, error) {
	return nil, nil
}

func (s *stubPublicAlerts) ListVisible(ctx context.Context, profileID uuid.UUID) ([]alerts.AlertDTO, error) {
	return s.visible, nil
}

func (s *stubPublicAlerts) Update(ctx context.Context, userID, alertID uuid.UUID, input alerts.UpdateAlertInput) (*alerts.AlertDTO, error) {
	return nil, nil
}

func (s *stubPublicAlerts) Delete(ctx context.Context, userID, alertID uuid.UUID) error {
	return nil
}

func publicRequest(target string, params map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestPublicProfileAssemblesPayload(t *testing.T) {
	profileID := uuid.New()
	profileStub := &stubPublicProfiles{profile: &profiles.ProfileDTO{ID: profileID, Name: "Maria"}}
	linkStub := &stubPublicLinks{public: &links.PublicLinks{}}
	handler := PublicProfile(profileStub, linkStub, &stubPublicProducts{}, &stubPublicAlerts{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, publicRequest("/p/acme", map[string]string{"orgSlug": "acme"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if profileStub.lastOrgSlug != "acme" {
		t.Fatalf("expected org slug forwarded, got %q", profileStub.lastOrgSlug)
	}
	if profileStub.lastSlug != nil {
		t.Fatalf("expected nil profile slug, got %v", *profileStub.lastSlug)
	}
	if linkStub.lastID != profileID {
		t.Fatalf("expected resolved profile id used for links, got %s", linkStub.lastID)
	}
	body := rec.Body.String()
	for _, key := range []string{"profile", "links", "products", "alerts"} {
		if !strings.Contains(body, key) {
			t.Fatalf("expected %s in payload got %s", key, body)
		}
	}
}

func TestPublicProfileForwardsProfileSlug(t *testing.T) {
	profileStub := &stubPublicProfiles{profile: &profiles.ProfileDTO{ID: uuid.New()}}
	handler := PublicProfile(profileStub, &stubPublicLinks{public: &links.PublicLinks{}}, &stubPublicProducts{}, &stubPublicAlerts{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, publicRequest("/p/acme/maria", map[string]string{"orgSlug": "acme", "profileSlug": "maria"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if profileStub.lastSlug == nil || *profileStub.lastSlug != "maria" {
		t.Fatalf("expected profile slug forwarded, got %v", profileStub.lastSlug)
	}
}

func TestPublicProfileNotFound(t *testing.T) {
	profileStub := &stubPublicProfiles{err: pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")}
	handler := PublicProfile(profileStub, &stubPublicLinks{}, &stubPublicProducts{}, &stubPublicAlerts{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, publicRequest("/p/missing", map[string]string{"orgSlug": "missing"}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestLinkClickRecords(t *testing.T) {
	linkID := uuid.New()
	linkStub := &stubPublicLinks{}
	handler := LinkClick(linkStub, nil)

	req := httptest.NewRequest(http.MethodPost, "/links/"+linkID.String()+"/click", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("linkID", linkID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if linkStub.lastID != linkID {
		t.Fatalf("expected link id forwarded, got %s", linkStub.lastID)
	}
}
