package events

import (
	"context"
	"encoding/json"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
)

const publishTimeout = 10 * time.Second

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type rowInserter interface {
	InsertRows(ctx context.Context, table string, rows []any) error
}

// DonationEvent is the payload published on donation.succeeded and mirrored
// into the analytics table.
type DonationEvent struct {
	EventType    string    `json:"event_type" bigquery:"event_type"`
	Reference    string    `json:"reference" bigquery:"reference"`
	DonationID   string    `json:"donation_id" bigquery:"donation_id"`
	Amount       int64     `json:"amount" bigquery:"amount"`
	Fee          int64     `json:"fee" bigquery:"fee"`
	Currency     string    `json:"currency" bigquery:"currency"`
	ProjectTitle string    `json:"project_title,omitempty" bigquery:"project_title"`
	FundTitle    string    `json:"fund_title,omitempty" bigquery:"fund_title"`
	Source       string    `json:"source" bigquery:"source"`
	OccurredAt   time.Time `json:"occurred_at" bigquery:"occurred_at"`
}

// Emitter fans reconciled donations out to Pub/Sub (receipt pipeline) and
// BigQuery (reporting). Emission is best effort: the ledger write already
// committed, so failures here are logged and never surfaced to the gateway.
type Emitter struct {
	pub     publisher
	sink    rowInserter
	bqTable string
	logg    *logger.Logger
}

// EmitterParams configures the emitter; any nil target is skipped.
type EmitterParams struct {
	Publisher     *gcppubsub.Publisher
	Sink          rowInserter
	BigQueryTable string
	Logger        *logger.Logger
}

func NewEmitter(params EmitterParams) *Emitter {
	return &Emitter{
		pub:     newGCPPublisher(params.Publisher),
		sink:    params.Sink,
		bqTable: params.BigQueryTable,
		logg:    params.Logger,
	}
}

// DonationSucceeded publishes the domain event and appends the analytics row.
func (e *Emitter) DonationSucceeded(ctx context.Context, donation *models.Donation, source string) {
	if e == nil || donation == nil {
		return
	}

	event := DonationEvent{
		EventType:  "donation.succeeded",
		Reference:  donation.Reference,
		DonationID: donation.ID.String(),
		Amount:     donation.Amount,
		Fee:        donation.Fee,
		Currency:   donation.Currency,
		Source:     source,
		OccurredAt: time.Now().UTC(),
	}
	if donation.ProjectTitle != nil {
		event.ProjectTitle = *donation.ProjectTitle
	}
	if donation.FundTitle != nil {
		event.FundTitle = *donation.FundTitle
	}

	e.publish(ctx, event)
	e.insertRow(ctx, event)
}

func (e *Emitter) publish(ctx context.Context, event DonationEvent) {
	if e.pub == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		e.warn(ctx, event, "donation.event.encode_failed", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	result := e.pub.Publish(publishCtx, &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type": event.EventType,
			"reference":  event.Reference,
			"source":     event.Source,
		},
	})
	if result == nil {
		e.warn(ctx, event, "donation.event.publish_skipped", nil)
		return
	}
	if _, err := result.Get(publishCtx); err != nil {
		// NotFound means the topic was deleted out from under us; every
		// other gRPC code is transient from this side.
		if status.Code(err) == codes.NotFound {
			e.warn(ctx, event, "donation.event.topic_missing", err)
			return
		}
		e.warn(ctx, event, "donation.event.publish_failed", err)
	}
}

func (e *Emitter) insertRow(ctx context.Context, event DonationEvent) {
	if e.sink == nil || e.bqTable == "" {
		return
	}
	if err := e.sink.InsertRows(ctx, e.bqTable, []any{event}); err != nil {
		e.warn(ctx, event, "donation.event.sink_failed", err)
	}
}

func (e *Emitter) warn(ctx context.Context, event DonationEvent, msg string, err error) {
	if e.logg == nil {
		return
	}
	fields := map[string]any{
		"reference":  event.Reference,
		"event_type": event.EventType,
		"source":     event.Source,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	e.logg.Warn(e.logg.WithFields(ctx, fields), msg)
}

func newGCPPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
