package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/conectlink/conectlink-backend/pkg/auth"
	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"
	"github.com/conectlink/conectlink-backend/pkg/security"
)

type stubUserRepo struct {
	user          *models.User
	lastLoginID   uuid.UUID
	lastLoginAt   time.Time
	lastLoginErr  error
	findByEmailIn string
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.findByEmailIn = email
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if s.lastLoginErr != nil {
		return s.lastLoginErr
	}
	s.lastLoginID = id
	s.lastLoginAt = at
	return nil
}

type stubSessionManager struct {
	lastAccessID string
	err          error
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastAccessID = accessID
	return "refresh-" + accessID, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "conectlink",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func activeUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: mustHashPassword(t, password),
		Name:         "Maria",
		IsActive:     true,
	}
}

func buildLoginService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestLoginIssuesTokenPair(t *testing.T) {
	password := "correct horse"
	repo := &stubUserRepo{user: activeUser(t, "maria@example.com", password)}
	sessions := &stubSessionManager{}
	svc := buildLoginService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Maria@Example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if repo.findByEmailIn != "maria@example.com" {
		t.Fatalf("expected lowercased trimmed lookup, got %q", repo.findByEmailIn)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != repo.user.ID {
		t.Fatalf("expected user id claim %s, got %s", repo.user.ID, claims.UserID)
	}
	if claims.Email != "maria@example.com" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
	if claims.ID != sessions.lastAccessID {
		t.Fatalf("expected jti %q to match stored session id %q", claims.ID, sessions.lastAccessID)
	}
	if resp.RefreshToken != "refresh-"+sessions.lastAccessID {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if resp.User == nil || resp.User.Email != "maria@example.com" {
		t.Fatalf("expected user DTO in response")
	}
	if repo.lastLoginID != repo.user.ID {
		t.Fatalf("expected last login stamp for user")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := &stubUserRepo{user: activeUser(t, "maria@example.com", "right")}
	svc := buildLoginService(t, repo, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "maria@example.com", Password: "wrong"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := buildLoginService(t, &stubUserRepo{}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	password := "still valid"
	user := activeUser(t, "blocked@example.com", password)
	user.IsActive = false
	svc := buildLoginService(t, &stubUserRepo{user: user}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "blocked@example.com", Password: password})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestLoginRejectsBlankEmail(t *testing.T) {
	svc := buildLoginService(t, &stubUserRepo{}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "   ", Password: "whatever"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for blank email, got %v", err)
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	if _, err := NewService(ServiceParams{SessionManager: &stubSessionManager{}}); err == nil {
		t.Fatal("expected error without user repository")
	}
	if _, err := NewService(ServiceParams{UserRepo: &stubUserRepo{}}); err == nil {
		t.Fatal("expected error without session manager")
	}
}
