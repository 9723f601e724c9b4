package paystackwebhook

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adaezeudoka/hopewell-foundation-backend/internal/donations"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/metrics"
)

const sourceWebhook = "webhook"

type donationService interface {
	ApplyGatewayResult(ctx context.Context, source string, result donations.GatewayResult) (*donations.TransitionOutcome, error)
}

type ServiceParams struct {
	Donations donationService
	Metrics   *metrics.PaymentMetrics
	Logger    *logger.Logger
}

type Service struct {
	donations donationService
	metrics   *metrics.PaymentMetrics
	logg      *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Donations == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "donation service required")
	}
	return &Service{
		donations: params.Donations,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// HandleEvent applies one verified delivery to the donation ledger. Events
// outside the charge lifecycle are acknowledged without side effects. A
// returned error means the write failed and the delivery should be retried.
func (s *Service) HandleEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "paystack event required")
	}

	switch event.Event {
	case EventChargeSuccess:
		return s.applyCharge(ctx, event, true)
	case EventChargeFailed:
		return s.applyCharge(ctx, event, false)
	default:
		s.observe(event.Event, metrics.OutcomeIgnored)
		if s.logg != nil {
			s.logg.Info(ctx, fmt.Sprintf("paystack event %s ignored", event.Event))
		}
		return nil
	}
}

func (s *Service) applyCharge(ctx context.Context, event *Event, succeeded bool) error {
	result := donations.GatewayResult{
		Reference: event.Data.Reference,
		Succeeded: succeeded,
		PaidAt:    event.Data.PaidAtTime(),
	}
	if succeeded {
		result.Amount = event.Data.Amount
		result.Fees = event.Data.Fees
		if event.Data.ID != 0 {
			result.TransactionID = strconv.FormatInt(event.Data.ID, 10)
		}
	}

	outcome, err := s.donations.ApplyGatewayResult(ctx, sourceWebhook, result)
	if err != nil {
		s.observe(event.Event, metrics.OutcomeError)
		return err
	}

	s.observe(event.Event, outcomeLabel(outcome))
	return nil
}

func (s *Service) observe(event, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveWebhookEvent(event, outcome)
}

func outcomeLabel(outcome *donations.TransitionOutcome) string {
	switch {
	case outcome == nil:
		return metrics.OutcomeError
	case !outcome.Found:
		return metrics.OutcomeUnknown
	case outcome.Applied:
		return metrics.OutcomeApplied
	default:
		return metrics.OutcomeDuplicate
	}
}
