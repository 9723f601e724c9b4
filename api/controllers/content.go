package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/api/middleware"
	"github.com/adaezeudoka/hopewell-foundation-backend/api/responses"
	"github.com/adaezeudoka/hopewell-foundation-backend/api/validators"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/content"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

type createContentRequest struct {
	Kind        string  `json:"kind" validate:"required,oneof=video audio ebook gallery"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	MediaURL    string  `json:"media_url" validate:"required,url,max=500"`
	StorageKey  *string `json:"storage_key" validate:"omitempty,max=500"`
	Published   bool    `json:"published"`
}

type updateContentRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	MediaURL    *string `json:"media_url" validate:"omitempty,url,max=500"`
	Published   *bool   `json:"published"`
}

type createTeamMemberRequest struct {
	Name      string  `json:"name" validate:"required,max=120"`
	Title     string  `json:"title" validate:"required,max=120"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url,max=500"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
}

type updateTeamMemberRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=120"`
	Title     *string `json:"title" validate:"omitempty,max=120"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url,max=500"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

type presignUploadRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=video audio ebook gallery"`
	FileName string `json:"file_name" validate:"required,max=200"`
	MimeType string `json:"mime_type" validate:"required,max=100"`
}

// ListPublicContent serves the published media library to the site.
func ListPublicContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		kind, err := contentKindFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListPublished(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ListPublicTeam serves the team page roster.
func ListPublicTeam(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		members, err := svc.ListTeam(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

// ListAdminContent serves drafts and published items to the console.
func ListAdminContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		kind, err := contentKindFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListAll(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CreateContent adds a media library entry.
func CreateContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createContentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseContentKind(req.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kind"))
			return
		}

		item, err := svc.CreateContent(r.Context(), actorID, content.CreateContentInput{
			Kind:        kind,
			Title:       req.Title,
			Description: req.Description,
			MediaURL:    req.MediaURL,
			StorageKey:  req.StorageKey,
			Published:   req.Published,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// UpdateContent edits a media library entry.
func UpdateContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		actorID, itemID, err := actorAndParamID(r, "contentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateContentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateContent(r.Context(), actorID, itemID, content.UpdateContentInput{
			Title:       req.Title,
			Description: req.Description,
			MediaURL:    req.MediaURL,
			Published:   req.Published,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// DeleteContent removes a media library entry.
func DeleteContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		actorID, itemID, err := actorAndParamID(r, "contentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteContent(r.Context(), actorID, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CreateTeamMember adds a team page entry.
func CreateTeamMember(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createTeamMemberRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.CreateTeamMember(r.Context(), actorID, content.CreateTeamMemberInput{
			Name:      req.Name,
			Title:     req.Title,
			Bio:       req.Bio,
			PhotoURL:  req.PhotoURL,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, member)
	}
}

// UpdateTeamMember edits a team page entry.
func UpdateTeamMember(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		actorID, memberID, err := actorAndParamID(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateTeamMemberRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.UpdateTeamMember(r.Context(), actorID, memberID, content.UpdateTeamMemberInput{
			Name:      req.Name,
			Title:     req.Title,
			Bio:       req.Bio,
			PhotoURL:  req.PhotoURL,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, member)
	}
}

// DeleteTeamMember removes a team page entry.
func DeleteTeamMember(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		actorID, memberID, err := actorAndParamID(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteTeamMember(r.Context(), actorID, memberID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PresignMediaUpload issues a direct-to-bucket upload URL.
func PresignMediaUpload(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		var req presignUploadRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseContentKind(req.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kind"))
			return
		}

		out, err := svc.PresignUpload(r.Context(), content.PresignInput{
			Kind:     kind,
			FileName: req.FileName,
			MimeType: req.MimeType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

func contentKindFilter(r *http.Request) (*enums.ContentKind, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("kind"))
	if raw == "" {
		return nil, nil
	}
	kind, err := enums.ParseContentKind(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kind filter")
	}
	return &kind, nil
}

func actorFromContext(r *http.Request) (uuid.UUID, error) {
	actorID, err := uuid.Parse(middleware.AdminIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin identity")
	}
	return actorID, nil
}

func actorAndParamID(r *http.Request, param string) (uuid.UUID, uuid.UUID, error) {
	actorID, err := actorFromContext(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	return actorID, id, nil
}
