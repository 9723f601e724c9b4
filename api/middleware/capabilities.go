package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/api/responses"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/rbac"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

// RequireCapability gates a route on the guard's capability check. The check
// reads the live admin record, so a role change or deactivation takes effect
// without waiting for the token to expire.
func RequireCapability(guard *rbac.Guard, capability rbac.Capability, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID, err := uuid.Parse(AdminIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin identity"))
				return
			}

			admin, err := guard.Authorize(r.Context(), adminID, capability)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			// Refresh context with the live record in case the token is stale.
			ctx := WithRole(r.Context(), string(admin.Role))
			ctx = WithEmail(ctx, admin.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
