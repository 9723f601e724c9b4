package controllers

import (
	"net/http"

	"github.com/adaezeudoka/hopewell-foundation-backend/api/responses"
	"github.com/adaezeudoka/hopewell-foundation-backend/api/validators"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/audit"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

// ListAuditLog returns the most recent audit entries, newest first.
func ListAuditLog(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
