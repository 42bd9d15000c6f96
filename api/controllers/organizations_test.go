package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/api/middleware"
	"github.com/conectlink/conectlink-backend/internal/organizations"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type stubOrganizationsService struct {
	lastUserID uuid.UUID
	lastOrgID  uuid.UUID
	lastCreate organizations.CreateOrganizationInput
	lastUpdate organizations.UpdateOrganizationInput
	created    *organizations.OrganizationDTO
	err        error
	deleted    bool
}

func (s *stubOrganizationsService) Create(ctx context.Context, userID uuid.UUID, input organizations.CreateOrganizationInput) (*organizations.OrganizationDTO, error) {
	s.lastUserID = userID
	s.lastCreate = input
	return s.created, s.err
}

func (s *stubOrganizationsService) GetByID(ctx context.Context, userID, orgID uuid.UUID) (*organizations.OrganizationDTO, error) {
	s.lastUserID = userID
	s.lastOrgID = orgID
	return s.created, s.err
}

func (s *stubOrganizationsService) GetBySlug(ctx context.Context, slug string) (*organizations.OrganizationDTO, error) {
	return s.created, s.err
}

func (s *stubOrganizationsService) ListByUser(ctx context.Context, userID uuid.UUID) ([]organizations.OrganizationDTO, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	if s.created == nil {
		return nil, nil
	}
	return []organizations.OrganizationDTO{*s.created}, nil
}

func (s *stubOrganizationsService) Update(ctx context.Context, userID, orgID uuid.UUID, input organizations.UpdateOrganizationInput) (*organizations.OrganizationDTO, error) {
	s.lastUserID = userID
	s.lastOrgID = orgID
	s.lastUpdate = input
	return s.created, s.err
}

func (s *stubOrganizationsService) Delete(ctx context.Context, userID, orgID uuid.UUID) error {
	s.lastUserID = userID
	s.lastOrgID = orgID
	s.deleted = true
	return s.err
}

func authedRequest(method, target string, body []byte, userID uuid.UUID, params map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.WithUserID(req.Context(), userID.String())
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestCreateOrganization(t *testing.T) {
	userID := uuid.New()
	stub := &stubOrganizationsService{created: &organizations.OrganizationDTO{ID: uuid.New(), Name: "Acme"}}
	handler := CreateOrganization(stub, nil)

	body, _ := json.Marshal(map[string]string{"name": "Acme", "slug": "acme", "type": "business"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/organizations", body, userID, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastUserID != userID {
		t.Fatalf("expected caller forwarded, got %s", stub.lastUserID)
	}
	if stub.lastCreate.Name != "Acme" || stub.lastCreate.Slug != "acme" {
		t.Fatalf("unexpected input %+v", stub.lastCreate)
	}
}

func TestCreateOrganizationRejectsMissingUser(t *testing.T) {
	handler := CreateOrganization(&stubOrganizationsService{}, nil)

	body, _ := json.Marshal(map[string]string{"name": "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/organizations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestCreateOrganizationMapsLimitReached(t *testing.T) {
	stub := &stubOrganizationsService{err: pkgerrors.New(pkgerrors.CodeLimitReached, "organization limit reached for plan")}
	handler := CreateOrganization(stub, nil)

	body, _ := json.Marshal(map[string]string{"name": "Acme"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/organizations", body, uuid.New(), nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetOrganizationRejectsBadID(t *testing.T) {
	handler := GetOrganization(&stubOrganizationsService{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodGet, "/organizations/not-a-uuid", nil, uuid.New(), map[string]string{"orgID": "not-a-uuid"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUpdateOrganizationForwardsPartialInput(t *testing.T) {
	orgID := uuid.New()
	stub := &stubOrganizationsService{created: &organizations.OrganizationDTO{ID: orgID}}
	handler := UpdateOrganization(stub, nil)

	body, _ := json.Marshal(map[string]any{"name": "New Name", "is_active": false})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPatch, "/organizations/"+orgID.String(), body, uuid.New(), map[string]string{"orgID": orgID.String()}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastOrgID != orgID {
		t.Fatalf("expected org id forwarded, got %s", stub.lastOrgID)
	}
	if stub.lastUpdate.Name == nil || *stub.lastUpdate.Name != "New Name" {
		t.Fatalf("expected name update forwarded, got %+v", stub.lastUpdate)
	}
	if stub.lastUpdate.IsActive == nil || *stub.lastUpdate.IsActive {
		t.Fatalf("expected is_active=false forwarded, got %+v", stub.lastUpdate)
	}
	if stub.lastUpdate.Logo != nil {
		t.Fatalf("expected untouched fields to stay nil, got %+v", stub.lastUpdate)
	}
}

func TestDeleteOrganization(t *testing.T) {
	orgID := uuid.New()
	stub := &stubOrganizationsService{}
	handler := DeleteOrganization(stub, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodDelete, "/organizations/"+orgID.String(), nil, uuid.New(), map[string]string{"orgID": orgID.String()}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !stub.deleted {
		t.Fatal("expected Delete to be invoked")
	}
}
