package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/api/middleware"
	"github.com/adaezeudoka/hopewell-foundation-backend/api/responses"
	"github.com/adaezeudoka/hopewell-foundation-backend/api/validators"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/admins"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

type updateAdminRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=super_admin finance_admin content_admin"`
}

type setAdminActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type updateAdminProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=120"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url,max=500"`
}

// ListAdmins returns every console account for the management screen.
func ListAdmins(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admins service unavailable"))
			return
		}

		accounts, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, accounts)
	}
}

// UpdateAdminRole changes another admin's role.
func UpdateAdminRole(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admins service unavailable"))
			return
		}

		actorID, targetID, err := adminMutationIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateAdminRoleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseAdminRole(req.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		updated, err := svc.UpdateRole(r.Context(), actorID, targetID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// SetAdminActive toggles another admin's active flag.
func SetAdminActive(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admins service unavailable"))
			return
		}

		actorID, targetID, err := adminMutationIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setAdminActiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetActive(r.Context(), actorID, targetID, *req.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// UpdateAdminProfile edits display name and photo for an admin account.
func UpdateAdminProfile(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admins service unavailable"))
			return
		}

		actorID, targetID, err := adminMutationIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateAdminProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), actorID, targetID, admins.UpdateProfileInput{
			DisplayName: req.DisplayName,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func adminMutationIDs(r *http.Request) (actorID, targetID uuid.UUID, err error) {
	actorID, err = uuid.Parse(middleware.AdminIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin identity")
	}
	targetID, err = uuid.Parse(chi.URLParam(r, "adminId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid admin id")
	}
	return actorID, targetID, nil
}
