package auth

import (
	"context"
	"strings"
	"time"

	pkgauth "github.com/adaezeudoka/hopewell-foundation-backend/pkg/auth"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/auth/session"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/config"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/security"

	"github.com/google/uuid"
)

// LoginInput carries the credentials posted to the console login endpoint.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the issued session plus the public view of the admin.
type LoginResult struct {
	Token string            `json:"token"`
	Admin *models.AdminUser `json:"admin"`
}

type adminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Create(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

type passwordVerifier func(password, encoded string) (bool, error)

// Service authenticates console admins. Login failures are reported with one
// generic message so the endpoint does not reveal which accounts exist.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	admins   adminStore
	sessions sessionManager
	jwtCfg   config.JWTConfig
	verify   passwordVerifier
	now      func() time.Time
	logg     *logger.Logger
}

type ServiceParams struct {
	Admins   adminStore
	Sessions sessionManager
	JWT      config.JWTConfig
	Logger   *logger.Logger

	// Now and VerifyPassword are overridable for tests.
	Now            func() time.Time
	VerifyPassword passwordVerifier
}

func NewService(params ServiceParams) (*service, error) {
	if params.Admins == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin store required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	if strings.TrimSpace(params.JWT.Secret) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "jwt secret required")
	}

	svc := &service{
		admins:   params.Admins,
		sessions: params.Sessions,
		jwtCfg:   params.JWT,
		verify:   params.VerifyPassword,
		now:      params.Now,
		logg:     params.Logger,
	}
	if svc.verify == nil {
		svc.verify = security.VerifyPassword
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}

	ok, err := s.verify(input.Password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	// Deactivated accounts keep their password but lose the door.
	if !admin.Active {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin account is deactivated")
	}

	now := s.now().UTC()
	jti := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		JTI:     jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Create(ctx, jti); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	if err := s.admins.TouchLastLogin(ctx, admin.ID, now); err != nil {
		// Login already succeeded; a stale last_login_at is not worth failing it.
		if s.logg != nil {
			s.logg.Error(ctx, "auth.last_login.update_failed", err)
		}
	}
	admin.LastLoginAt = &now

	if s.logg != nil {
		logCtx := s.logg.WithAdminID(ctx, admin.ID.String())
		s.logg.Info(logCtx, "auth.login.succeeded")
	}

	return &LoginResult{Token: token, Admin: admin}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}
