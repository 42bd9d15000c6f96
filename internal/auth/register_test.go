package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/conectlink/conectlink-backend/internal/accounts"
	pkgAuth "github.com/conectlink/conectlink-backend/pkg/auth"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
)

type stubAccounts struct {
	lastParams accounts.CreateAccountParams
	result     *accounts.CreateAccountResult
	err        error
}

func (s *stubAccounts) CreateAccount(_ context.Context, params accounts.CreateAccountParams) (*accounts.CreateAccountResult, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func buildRegisterService(t *testing.T, provisioner *stubAccounts, sessions *stubSessionManager) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		Accounts:       provisioner,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build register service: %v", err)
	}
	return svc
}

func TestRegisterProvisionsAccountAndLogsIn(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "nuevo@example.com", Name: "Nuevo", IsActive: true}
	provisioner := &stubAccounts{result: &accounts.CreateAccountResult{User: user}}
	sessions := &stubSessionManager{}
	svc := buildRegisterService(t, provisioner, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nuevo",
		Email:    "nuevo@example.com",
		Password: "long enough",
		PlanSlug: "basico",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if provisioner.lastParams.Email != "nuevo@example.com" {
		t.Fatalf("unexpected email forwarded: %q", provisioner.lastParams.Email)
	}
	if provisioner.lastParams.PlanSlug != "basico" {
		t.Fatalf("expected plan slug forwarded, got %q", provisioner.lastParams.PlanSlug)
	}
	if provisioner.lastParams.Notes != "Created via signup" {
		t.Fatalf("unexpected notes %q", provisioner.lastParams.Notes)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim %s, got %s", user.ID, claims.UserID)
	}
	if claims.ID != sessions.lastAccessID {
		t.Fatalf("jti should match stored session id")
	}
	if resp.User == nil || resp.User.Email != "nuevo@example.com" {
		t.Fatalf("expected user DTO in response")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := buildRegisterService(t, &stubAccounts{}, &stubSessionManager{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nuevo",
		Email:    "nuevo@example.com",
		Password: "short",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRejectsBlankName(t *testing.T) {
	svc := buildRegisterService(t, &stubAccounts{}, &stubSessionManager{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "  ",
		Email:    "nuevo@example.com",
		Password: "long enough",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterPropagatesConflict(t *testing.T) {
	provisioner := &stubAccounts{err: pkgerrors.New(pkgerrors.CodeConflict, "email nuevo@example.com already registered")}
	svc := buildRegisterService(t, provisioner, &stubSessionManager{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nuevo",
		Email:    "nuevo@example.com",
		Password: "long enough",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestNewRegisterServiceValidatesDependencies(t *testing.T) {
	if _, err := NewRegisterService(RegisterServiceParams{SessionManager: &stubSessionManager{}}); err == nil {
		t.Fatal("expected error without accounts service")
	}
	if _, err := NewRegisterService(RegisterServiceParams{Accounts: &stubAccounts{}}); err == nil {
		t.Fatal("expected error without session manager")
	}
}
