package paystackwebhook

import (
	"strings"
	"time"
)

// Event types Paystack delivers that this service acts on. Everything else is
// acknowledged and ignored.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// Event is the Paystack webhook envelope. Only the fields the reconciliation
// path reads are decoded.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

// EventData carries the transaction payload inside a charge event.
type EventData struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Fees      int64  `json:"fees"`
	Status    string `json:"status"`
	Channel   string `json:"channel"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

// DeliveryID is the idempotency key for one delivery. Paystack does not send
// an event id, so the event type plus reference stands in for it.
func (e *Event) DeliveryID() string {
	if e == nil {
		return ""
	}
	reference := strings.TrimSpace(e.Data.Reference)
	if reference == "" {
		return ""
	}
	return e.Event + ":" + reference
}

// PaidAtTime parses the gateway's paid_at timestamp, returning nil when the
// field is absent or malformed.
func (d EventData) PaidAtTime() *time.Time {
	raw := strings.TrimSpace(d.PaidAt)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	utc := parsed.UTC()
	return &utc
}
