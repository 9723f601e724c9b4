package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
)

type adminFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
}

// Guard answers capability checks against the live admin record, so role
// changes and deactivation apply on the very next request rather than at the
// next login.
type Guard struct {
	admins adminFinder
}

func NewGuard(admins adminFinder) (*Guard, error) {
	if admins == nil {
		return nil, fmt.Errorf("admin finder required")
	}
	return &Guard{admins: admins}, nil
}

// Authorize loads the acting admin and checks the capability. The returned
// admin is the fresh DB record, not the token snapshot.
func (g *Guard) Authorize(ctx context.Context, adminID uuid.UUID, capability Capability) (*models.AdminUser, error) {
	if adminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin identity")
	}

	admin, err := g.admins.FindByID(ctx, adminID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}

	// Deactivation overrides every capability a role would grant.
	if !admin.Active {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin account is deactivated")
	}

	if !Allowed(admin.Role, capability) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")
	}

	return admin, nil
}
