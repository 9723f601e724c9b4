package donations

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/metrics"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/pagination"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/paystack"
)

const (
	maxDonationMinor = 500_000_000 // 5,000,000 NGN in kobo
	defaultCurrency  = "NGN"
)

// gatewayVerifier is satisfied by the Paystack client.
type gatewayVerifier interface {
	Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error)
}

// eventEmitter fans successful donations out to Pub/Sub and BigQuery.
// Emission is best effort; the ledger write is already committed.
type eventEmitter interface {
	DonationSucceeded(ctx context.Context, donation *models.Donation, source string)
}

// Service owns the donations ledger: intent creation, the reconciliation
// transition shared by webhook and verify paths, and the admin read surface.
type Service interface {
	CreateIntent(ctx context.Context, input CreateIntentInput) (*models.Donation, error)
	ApplyGatewayResult(ctx context.Context, source string, result GatewayResult) (*TransitionOutcome, error)
	Verify(ctx context.Context, reference string) (*VerifyOutcome, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo     Repository
	verifier gatewayVerifier
	events   eventEmitter
	metrics  *metrics.PaymentMetrics
	logg     *logger.Logger
}

// ServiceParams bundles the donation service dependencies.
type ServiceParams struct {
	Repo     Repository
	Verifier gatewayVerifier
	Events   eventEmitter
	Metrics  *metrics.PaymentMetrics
	Logger   *logger.Logger
}

// NewService wires the donations dependencies. Events and metrics are
// optional; repo and verifier are not.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "donations repository required")
	}
	if params.Verifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gateway verifier required")
	}
	return &service{
		repo:     params.Repo,
		verifier: params.Verifier,
		events:   params.Events,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// NewReference mints the gateway join key for a fresh donation intent.
func NewReference() string {
	return "hw_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *service) CreateIntent(ctx context.Context, input CreateIntentInput) (*models.Donation, error) {
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if input.Amount > maxDonationMinor {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount exceeds donation limit")
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	donation := &models.Donation{
		Reference:    NewReference(),
		Status:       enums.DonationStatusPending,
		Amount:       input.Amount,
		Currency:     currency,
		DonorName:    input.DonorName,
		DonorEmail:   input.DonorEmail,
		ProjectTitle: input.ProjectTitle,
		FundTitle:    input.FundTitle,
		Gateway:      "paystack",
	}

	created, err := s.repo.Create(ctx, donation)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "donation reference already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create donation")
	}

	if s.logg != nil {
		logCtx := s.logg.WithReference(ctx, created.Reference)
		logCtx = s.logg.WithField(logCtx, "amount", created.Amount)
		s.logg.Info(logCtx, "donation.intent.created")
	}
	return created, nil
}

// ApplyGatewayResult is the single reconciliation entry point. Both the
// webhook consumer and the verify endpoint funnel through here, so the
// idempotency guarantees live in exactly one place.
func (s *service) ApplyGatewayResult(ctx context.Context, source string, result GatewayResult) (*TransitionOutcome, error) {
	reference := strings.TrimSpace(result.Reference)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference required")
	}

	var mark markResult
	var err error
	if result.Succeeded {
		mark, err = s.repo.MarkSuccess(ctx, reference, SuccessFields{
			Amount:        result.Amount,
			Fee:           result.Fees,
			TransactionID: result.TransactionID,
			PaidAt:        result.PaidAt,
		})
	} else {
		mark, err = s.repo.MarkFailed(ctx, reference, time.Now().UTC())
	}
	if err != nil {
		s.observeTransition(source, metrics.OutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply gateway result")
	}

	outcome := &TransitionOutcome{Found: mark.Found, Applied: mark.Applied}

	if !mark.Found {
		s.observeTransition(source, metrics.OutcomeUnknown)
		if s.logg != nil {
			logCtx := s.logg.WithReference(ctx, reference)
			logCtx = s.logg.WithField(logCtx, "source", source)
			s.logg.Warn(logCtx, "donation.transition.unknown_reference")
		}
		return outcome, nil
	}

	donation, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		s.observeTransition(source, metrics.OutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload donation")
	}
	outcome.Donation = donation

	switch {
	case mark.Applied && result.Succeeded:
		s.observeTransition(source, metrics.OutcomeApplied)
		if s.logg != nil {
			logCtx := s.logg.WithReference(ctx, reference)
			logCtx = s.logg.WithFields(logCtx, map[string]any{"source": source, "amount": donation.Amount})
			s.logg.Info(logCtx, "donation.transition.success")
		}
		if s.events != nil {
			s.events.DonationSucceeded(ctx, donation, source)
		}
	case mark.Applied:
		s.observeTransition(source, metrics.OutcomeApplied)
		if s.logg != nil {
			logCtx := s.logg.WithReference(ctx, reference)
			logCtx = s.logg.WithField(logCtx, "source", source)
			s.logg.Info(logCtx, "donation.transition.failed")
		}
	default:
		// Found but not updated: either a duplicate success delivery or a
		// failure event racing a terminal status. Both are no-ops.
		outcome.Duplicate = donation.Status == enums.DonationStatusSuccess
		s.observeTransition(source, metrics.OutcomeDuplicate)
		if s.logg != nil {
			logCtx := s.logg.WithReference(ctx, reference)
			logCtx = s.logg.WithFields(logCtx, map[string]any{"source": source, "status": donation.Status})
			s.logg.Info(logCtx, "donation.transition.noop")
		}
	}

	return outcome, nil
}

// Verify reconciles one reference against Paystack on behalf of the donor's
// browser. Gateway data is authoritative; nothing the client sent is trusted.
func (s *service) Verify(ctx context.Context, reference string) (*VerifyOutcome, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference required")
	}

	result, err := s.verifier.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !result.Success() {
		// A non-success verify leaves the record pending; only the
		// charge.failed webhook demotes it.
		donation, findErr := s.repo.FindByReference(ctx, reference)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load donation")
		}
		s.observeTransition("verify", metrics.OutcomeIgnored)
		return &VerifyOutcome{Status: string(enums.DonationStatusFailed), Donation: donation}, nil
	}

	outcome, err := s.ApplyGatewayResult(ctx, "verify", GatewayResult{
		Reference:     reference,
		Succeeded:     true,
		Amount:        result.Amount,
		Fees:          result.Fees,
		TransactionID: strconv.FormatInt(result.TransactionID, 10),
		PaidAt:        result.PaidAt,
	})
	if err != nil {
		return nil, err
	}
	if !outcome.Found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
	}

	return &VerifyOutcome{Status: string(enums.DonationStatusSuccess), Donation: outcome.Donation}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listDonationsParams{
		Limit:   params.Limit,
		Filters: params.Filters,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donations")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Donations: rows, NextCursor: cursor}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	row, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "donation stats")
	}

	minorFactor := decimal.NewFromInt(100)
	gross := decimal.NewFromInt(row.GrossMinor).Div(minorFactor)
	fees := decimal.NewFromInt(row.FeesMinor).Div(minorFactor)

	return &Stats{
		TotalCount:   row.TotalCount,
		SuccessCount: row.SuccessCount,
		PendingCount: row.PendingCount,
		FailedCount:  row.FailedCount,
		GrossRaised:  gross,
		TotalFees:    fees,
		NetRaised:    gross.Sub(fees),
	}, nil
}

func (s *service) observeTransition(source, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(source, outcome)
	}
}
