package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/adaezeudoka/hopewell-foundation-backend/api/responses"
	"github.com/adaezeudoka/hopewell-foundation-backend/api/validators"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/donations"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

type createDonationRequest struct {
	Amount       int64   `json:"amount" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	DonorName    *string `json:"donor_name" validate:"omitempty,max=120"`
	DonorEmail   *string `json:"donor_email" validate:"omitempty,email"`
	ProjectTitle *string `json:"project_title" validate:"omitempty,max=200"`
	FundTitle    *string `json:"fund_title" validate:"omitempty,max=200"`
}

type verifyDonationRequest struct {
	Reference string `json:"reference" validate:"required,max=100"`
}

// CreateDonation records a pending intent and hands the reference back to the
// checkout page.
func CreateDonation(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donations service unavailable"))
			return
		}

		var req createDonationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		donation, err := svc.CreateIntent(r.Context(), donations.CreateIntentInput{
			Amount:       req.Amount,
			Currency:     req.Currency,
			DonorName:    sanitizeOptional(req.DonorName, 120),
			DonorEmail:   sanitizeOptional(req.DonorEmail, 254),
			ProjectTitle: sanitizeOptional(req.ProjectTitle, 200),
			FundTitle:    sanitizeOptional(req.FundTitle, 200),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, donation)
	}
}

// VerifyDonation reconciles a reference against Paystack's verify API. The
// transition it applies is the same one the webhook path uses.
func VerifyDonation(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donations service unavailable"))
			return
		}

		var req verifyDonationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := svc.Verify(r.Context(), req.Reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, outcome)
	}
}

// ListDonations serves the admin ledger with cursor pagination and filters.
func ListDonations(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donations service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := donations.ListParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseDonationStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			params.Filters.Status = &status
		}

		if from, parseErr := parseQueryTime(r, "from"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if from != nil {
			params.Filters.DateFrom = from
		}

		if to, parseErr := parseQueryTime(r, "to"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if to != nil {
			params.Filters.DateTo = to
		}

		if q := validators.SanitizeString(r.URL.Query().Get("q"), 200); q != "" {
			params.Filters.Query = q
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DonationStats serves the admin dashboard aggregates.
func DonationStats(svc donations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donations service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

func parseQueryTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key+" timestamp")
	}
	utc := parsed.UTC()
	return &utc, nil
}

func sanitizeOptional(value *string, maxLen int) *string {
	if value == nil {
		return nil
	}
	clean := validators.SanitizeString(*value, maxLen)
	if clean == "" {
		return nil
	}
	return &clean
}
