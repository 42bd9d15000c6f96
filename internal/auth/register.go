package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/conectlink/conectlink-backend/pkg/auth"
	"github.com/conectlink/conectlink-backend/pkg/auth/session"
	"github.com/conectlink/conectlink-backend/pkg/config"
	pkgerrors "github.com/conectlink/conectlink-backend/pkg/errors"

	"github.com/conectlink/conectlink-backend/internal/accounts"
	"github.com/conectlink/conectlink-backend/internal/users"
)

const minPasswordLength = 8

// RegisterService handles self-service signup: account provisioning plus an
// immediate session so the client lands logged in.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
}

type accountProvisioner interface {
	CreateAccount(ctx context.Context, params accounts.CreateAccountParams) (*accounts.CreateAccountResult, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	Accounts       accountProvisioner
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

type registerService struct {
	accounts accountProvisioner
	session  sessionManager
	jwtCfg   config.JWTConfig
	now      func() time.Time
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts service is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &registerService{
		accounts: params.Accounts,
		session:  params.SessionManager,
		jwtCfg:   params.JWTConfig,
		now:      time.Now,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	password := req.Password
	if len(password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	result, err := s.accounts.CreateAccount(ctx, accounts.CreateAccountParams{
		Email:    req.Email,
		Name:     name,
		Password: password,
		PlanSlug: strings.TrimSpace(req.PlanSlug),
		Notes:    "Created via signup",
	})
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: result.User.ID,
		Email:  result.User.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(result.User),
	}, nil
}
