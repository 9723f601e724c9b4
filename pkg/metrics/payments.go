package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reconciliation outcome labels shared by the webhook and verify paths.
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeUnknown   = "unknown_reference"
	OutcomeIgnored   = "ignored"
	OutcomeError     = "error"
)

// PaymentMetrics records reconciliation activity for the payment subsystem.
type PaymentMetrics struct {
	webhookEvents     *prometheus.CounterVec
	signatureFailures prometheus.Counter
	transitions       *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment counters on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paystack_webhook_events_total",
		Help: "Paystack webhook deliveries by event type and outcome.",
	}, []string{"event", "outcome"})
	signatureFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "paystack_webhook_signature_failures_total",
		Help: "Webhook deliveries rejected for an invalid signature.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_transitions_total",
		Help: "Donation state transitions by source path and outcome.",
	}, []string{"source", "outcome"})
	reg.MustRegister(webhookEvents, signatureFailures, transitions)
	return &PaymentMetrics{
		webhookEvents:     webhookEvents,
		signatureFailures: signatureFailures,
		transitions:       transitions,
	}
}

// ObserveWebhookEvent counts one webhook delivery.
func (m *PaymentMetrics) ObserveWebhookEvent(event, outcome string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(event), normalizeLabel(outcome)).Inc()
}

// ObserveSignatureFailure counts one rejected delivery.
func (m *PaymentMetrics) ObserveSignatureFailure() {
	if m == nil || m.signatureFailures == nil {
		return
	}
	m.signatureFailures.Inc()
}

// ObserveTransition counts one donation state transition attempt.
func (m *PaymentMetrics) ObserveTransition(source, outcome string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(source), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
