package admins

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/internal/audit"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/config"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

const entityAdminUser = "admin_user"

// UpdateProfileInput carries the editable profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	PhotoURL    *string
}

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages console admin accounts. Every mutation writes its audit
// entry in the same transaction, and the configured root admin is never a
// valid mutation target for role or active changes.
type Service interface {
	List(ctx context.Context) ([]models.AdminUser, error)
	UpdateRole(ctx context.Context, actorID, adminID uuid.UUID, role enums.AdminRole) (*models.AdminUser, error)
	SetActive(ctx context.Context, actorID, adminID uuid.UUID, active bool) (*models.AdminUser, error)
	UpdateProfile(ctx context.Context, actorID, adminID uuid.UUID, input UpdateProfileInput) (*models.AdminUser, error)
}

type service struct {
	repo      Repository
	audit     auditRecorder
	txRunner  txRunner
	rootAdmin config.RootAdminConfig
	logg      *logger.Logger
}

type ServiceParams struct {
	Repo      Repository
	Audit     auditRecorder
	TxRunner  txRunner
	RootAdmin config.RootAdminConfig
	Logger    *logger.Logger
}

func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin repo required")
	}
	if params.Audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "audit recorder required")
	}
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &service{
		repo:      params.Repo,
		audit:     params.Audit,
		txRunner:  params.TxRunner,
		rootAdmin: params.RootAdmin,
		logg:      params.Logger,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.AdminUser, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
	}
	return admins, nil
}

func (s *service) UpdateRole(ctx context.Context, actorID, adminID uuid.UUID, role enums.AdminRole) (*models.AdminUser, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown admin role")
	}

	actor, target, err := s.loadActorAndTarget(ctx, actorID, adminID)
	if err != nil {
		return nil, err
	}
	if s.rootAdmin.IsRoot(target.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot modify primary super admin")
	}
	if target.Role == role {
		return target, nil
	}

	previous := target.Role
	target.Role = role
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update admin role")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditAdminRoleChanged,
			EntityType: entityAdminUser,
			EntityID:   target.ID.String(),
			Summary:    fmt.Sprintf("role changed from %s to %s for %s", previous, role, target.Email),
			Actor:      actor,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithField(ctx, "target_admin_id", target.ID.String())
		logCtx = s.logg.WithField(logCtx, "role", role.String())
		s.logg.Info(logCtx, "admin.role.changed")
	}
	return target, nil
}

func (s *service) SetActive(ctx context.Context, actorID, adminID uuid.UUID, active bool) (*models.AdminUser, error) {
	actor, target, err := s.loadActorAndTarget(ctx, actorID, adminID)
	if err != nil {
		return nil, err
	}
	if s.rootAdmin.IsRoot(target.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot modify primary super admin")
	}
	if target.Active == active {
		return target, nil
	}

	action := enums.AuditAdminDeactivated
	verb := "deactivated"
	if active {
		action = enums.AuditAdminActivated
		verb = "activated"
	}

	target.Active = active
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update admin active flag")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     action,
			EntityType: entityAdminUser,
			EntityID:   target.ID.String(),
			Summary:    fmt.Sprintf("%s %s", verb, target.Email),
			Actor:      actor,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithField(ctx, "target_admin_id", target.ID.String())
		logCtx = s.logg.WithField(logCtx, "active", active)
		s.logg.Info(logCtx, "admin.active.changed")
	}
	return target, nil
}

func (s *service) UpdateProfile(ctx context.Context, actorID, adminID uuid.UUID, input UpdateProfileInput) (*models.AdminUser, error) {
	actor, target, err := s.loadActorAndTarget(ctx, actorID, adminID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name cannot be empty")
		}
		if name != target.DisplayName {
			target.DisplayName = name
			changed = true
		}
	}
	if input.PhotoURL != nil {
		trimmed := strings.TrimSpace(*input.PhotoURL)
		if trimmed == "" {
			if target.PhotoURL != nil {
				target.PhotoURL = nil
				changed = true
			}
		} else if target.PhotoURL == nil || *target.PhotoURL != trimmed {
			target.PhotoURL = &trimmed
			changed = true
		}
	}
	if !changed {
		return target, nil
	}

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update admin profile")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			Action:     enums.AuditAdminProfileUpdated,
			EntityType: entityAdminUser,
			EntityID:   target.ID.String(),
			Summary:    fmt.Sprintf("profile updated for %s", target.Email),
			Actor:      actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

func (s *service) loadActorAndTarget(ctx context.Context, actorID, adminID uuid.UUID) (*models.AdminUser, *models.AdminUser, error) {
	if actorID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin identity")
	}
	if adminID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "admin id required")
	}

	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin account not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load acting admin")
	}

	target, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil, err
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load target admin")
	}

	return actor, target, nil
}
