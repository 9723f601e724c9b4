package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
)

type fakePublishResult struct {
	err error
}

func (f *fakePublishResult) Get(ctx context.Context) (string, error) {
	return "server-id", f.err
}

type fakePublisher struct {
	messages []*gcppubsub.Message
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	f.messages = append(f.messages, msg)
	return &fakePublishResult{err: f.err}
}

type fakeSink struct {
	table string
	rows  []any
	err   error
}

func (f *fakeSink) InsertRows(ctx context.Context, table string, rows []any) error {
	f.table = table
	f.rows = append(f.rows, rows...)
	return f.err
}

func testDonation() *models.Donation {
	project := "Clean Water"
	return &models.Donation{
		ID:           uuid.New(),
		Reference:    "REF_EVT",
		Amount:       5000,
		Fee:          75,
		Currency:     "NGN",
		ProjectTitle: &project,
	}
}

func TestDonationSucceededPublishesAndInserts(t *testing.T) {
	pub := &fakePublisher{}
	sink := &fakeSink{}
	emitter := &Emitter{pub: pub, sink: sink, bqTable: "donation_events"}

	emitter.DonationSucceeded(context.Background(), testDonation(), "webhook")

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "donation.succeeded", pub.messages[0].Attributes["event_type"])
	assert.Equal(t, "REF_EVT", pub.messages[0].Attributes["reference"])

	var event DonationEvent
	require.NoError(t, json.Unmarshal(pub.messages[0].Data, &event))
	assert.Equal(t, int64(5000), event.Amount)
	assert.Equal(t, "Clean Water", event.ProjectTitle)
	assert.Equal(t, "webhook", event.Source)

	assert.Equal(t, "donation_events", sink.table)
	require.Len(t, sink.rows, 1)
}

func TestDonationSucceededSwallowsFailures(t *testing.T) {
	pub := &fakePublisher{err: errors.New("publish boom")}
	sink := &fakeSink{err: errors.New("insert boom")}
	emitter := &Emitter{pub: pub, sink: sink, bqTable: "donation_events"}

	// must not panic or propagate
	emitter.DonationSucceeded(context.Background(), testDonation(), "verify")

	assert.Len(t, pub.messages, 1)
	assert.Len(t, sink.rows, 1)
}

func TestDonationSucceededNilTargets(t *testing.T) {
	emitter := NewEmitter(EmitterParams{})
	emitter.DonationSucceeded(context.Background(), testDonation(), "webhook")
	emitter.DonationSucceeded(context.Background(), nil, "webhook")
}
