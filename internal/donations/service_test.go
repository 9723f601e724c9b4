package donations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/pagination"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/paystack"
)

type fakeDonationsRepo struct {
	mu        sync.Mutex
	byRef     map[string]*models.Donation
	createErr error
}

func newFakeDonationsRepo() *fakeDonationsRepo {
	return &fakeDonationsRepo{byRef: map[string]*models.Donation{}}
}

func (f *fakeDonationsRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeDonationsRepo) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byRef[donation.Reference]; exists {
		return nil, errors.New("UNIQUE constraint failed: donations.reference")
	}
	donation.ID = uuid.New()
	donation.CreatedAt = time.Now().UTC()
	f.byRef[donation.Reference] = donation
	return donation, nil
}

func (f *fakeDonationsRepo) FindByReference(ctx context.Context, reference string) (*models.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation, ok := f.byRef[reference]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *donation
	return &copy, nil
}

func (f *fakeDonationsRepo) List(ctx context.Context, params listDonationsParams) ([]models.Donation, *pagination.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.Donation
	for _, d := range f.byRef {
		rows = append(rows, *d)
	}
	return rows, nil, nil
}

func (f *fakeDonationsRepo) MarkSuccess(ctx context.Context, reference string, fields SuccessFields) (markResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation, ok := f.byRef[reference]
	if !ok {
		return markResult{}, nil
	}
	if donation.Status == enums.DonationStatusSuccess {
		return markResult{Found: true}, nil
	}
	donation.Status = enums.DonationStatusSuccess
	donation.Fee = fields.Fee
	if fields.Amount > 0 {
		donation.Amount = fields.Amount
	}
	if fields.TransactionID != "" {
		donation.GatewayTransactionID = &fields.TransactionID
	}
	paidAt := fields.PaidAt
	if paidAt == nil {
		now := time.Now().UTC()
		paidAt = &now
	}
	donation.PaidAt = paidAt
	return markResult{Applied: true, Found: true}, nil
}

func (f *fakeDonationsRepo) MarkFailed(ctx context.Context, reference string, now time.Time) (markResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation, ok := f.byRef[reference]
	if !ok {
		return markResult{}, nil
	}
	if donation.Status != enums.DonationStatusPending {
		return markResult{Found: true}, nil
	}
	donation.Status = enums.DonationStatusFailed
	return markResult{Applied: true, Found: true}, nil
}

func (f *fakeDonationsRepo) Stats(ctx context.Context) (statsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var row statsRow
	for _, d := range f.byRef {
		row.TotalCount++
		switch d.Status {
		case enums.DonationStatusSuccess:
			row.SuccessCount++
			row.GrossMinor += d.Amount
			row.FeesMinor += d.Fee
		case enums.DonationStatusPending:
			row.PendingCount++
		case enums.DonationStatusFailed:
			row.FailedCount++
		}
	}
	return row, nil
}

type fakeVerifier struct {
	result *paystack.VerifyResult
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingEmitter) DonationSucceeded(ctx context.Context, donation *models.Donation, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, donation.Reference+"/"+source)
}

func newTestService(t *testing.T, repo Repository, verifier gatewayVerifier, emitter eventEmitter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Verifier: verifier, Events: emitter})
	require.NoError(t, err)
	return svc
}

func seedPending(repo *fakeDonationsRepo, reference string, amount int64) *models.Donation {
	donation := &models.Donation{
		ID:        uuid.New(),
		Reference: reference,
		Status:    enums.DonationStatusPending,
		Amount:    amount,
		Currency:  "NGN",
		Gateway:   "paystack",
	}
	repo.byRef[reference] = donation
	return donation
}

func TestCreateIntent(t *testing.T) {
	repo := newFakeDonationsRepo()
	svc := newTestService(t, repo, &fakeVerifier{}, nil)

	email := "donor@example.com"
	donation, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: 5000, DonorEmail: &email})
	require.NoError(t, err)
	assert.Equal(t, enums.DonationStatusPending, donation.Status)
	assert.Equal(t, "NGN", donation.Currency)
	assert.NotEmpty(t, donation.Reference)

	_, err = svc.CreateIntent(context.Background(), CreateIntentInput{Amount: 0})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateIntentDuplicateReferenceIsConflict(t *testing.T) {
	repo := newFakeDonationsRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "idx_donations_reference"`)
	svc := newTestService(t, repo, &fakeVerifier{}, nil)

	_, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: 5000})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestApplyGatewayResultSuccessOnce(t *testing.T) {
	repo := newFakeDonationsRepo()
	emitter := &recordingEmitter{}
	svc := newTestService(t, repo, &fakeVerifier{}, emitter)
	seedPending(repo, "REF123", 5000)

	paidAt := time.Now().UTC()
	result := GatewayResult{Reference: "REF123", Succeeded: true, Amount: 5000, Fees: 75, TransactionID: "99", PaidAt: &paidAt}

	first, err := svc.ApplyGatewayResult(context.Background(), "webhook", result)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, enums.DonationStatusSuccess, first.Donation.Status)

	second, err := svc.ApplyGatewayResult(context.Background(), "webhook", result)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.True(t, second.Duplicate)

	// event fires once, on the effective transition only
	assert.Equal(t, []string{"REF123/webhook"}, emitter.events)
}

func TestApplyGatewayResultUnknownReference(t *testing.T) {
	repo := newFakeDonationsRepo()
	svc := newTestService(t, repo, &fakeVerifier{}, nil)

	outcome, err := svc.ApplyGatewayResult(context.Background(), "webhook", GatewayResult{Reference: "GHOST", Succeeded: true})
	require.NoError(t, err)
	assert.False(t, outcome.Found)
	assert.False(t, outcome.Applied)
}

func TestApplyGatewayResultFailureNeverDemotesSuccess(t *testing.T) {
	repo := newFakeDonationsRepo()
	svc := newTestService(t, repo, &fakeVerifier{}, nil)
	donation := seedPending(repo, "REF_WIN", 2000)
	donation.Status = enums.DonationStatusSuccess

	outcome, err := svc.ApplyGatewayResult(context.Background(), "webhook", GatewayResult{Reference: "REF_WIN", Succeeded: false})
	require.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, enums.DonationStatusSuccess, outcome.Donation.Status)
}

func TestVerifySuccessAppliesTransition(t *testing.T) {
	repo := newFakeDonationsRepo()
	emitter := &recordingEmitter{}
	paidAt := time.Now().UTC()
	verifier := &fakeVerifier{result: &paystack.VerifyResult{
		Status:        "success",
		Reference:     "REF_V",
		Amount:        5000,
		Fees:          75,
		TransactionID: 12,
		PaidAt:        &paidAt,
	}}
	svc := newTestService(t, repo, verifier, emitter)
	seedPending(repo, "REF_V", 5000)

	outcome, err := svc.Verify(context.Background(), "REF_V")
	require.NoError(t, err)
	assert.Equal(t, "success", outcome.Status)
	assert.Equal(t, enums.DonationStatusSuccess, outcome.Donation.Status)
	require.NotNil(t, outcome.Donation.GatewayTransactionID)
	assert.Equal(t, "12", *outcome.Donation.GatewayTransactionID)
	assert.Len(t, emitter.events, 1)
}

func TestVerifyFailureLeavesPending(t *testing.T) {
	repo := newFakeDonationsRepo()
	verifier := &fakeVerifier{result: &paystack.VerifyResult{Status: "failed", Reference: "REF_F"}}
	svc := newTestService(t, repo, verifier, nil)
	seedPending(repo, "REF_F", 3000)

	outcome, err := svc.Verify(context.Background(), "REF_F")
	require.NoError(t, err)
	assert.Equal(t, "failed", outcome.Status)
	assert.Equal(t, enums.DonationStatusPending, outcome.Donation.Status)
}

func TestVerifyUnknownReference(t *testing.T) {
	repo := newFakeDonationsRepo()
	verifier := &fakeVerifier{result: &paystack.VerifyResult{Status: "success", Reference: "GHOST"}}
	svc := newTestService(t, repo, verifier, nil)

	_, err := svc.Verify(context.Background(), "GHOST")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestVerifyPropagatesGatewayErrors(t *testing.T) {
	repo := newFakeDonationsRepo()
	verifier := &fakeVerifier{err: pkgerrors.New(pkgerrors.CodeDependency, "paystack unreachable")}
	svc := newTestService(t, repo, verifier, nil)

	_, err := svc.Verify(context.Background(), "REF_X")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestStatsConvertsToMajorUnits(t *testing.T) {
	repo := newFakeDonationsRepo()
	svc := newTestService(t, repo, &fakeVerifier{}, nil)

	d := seedPending(repo, "REF_STAT", 500000)
	d.Status = enums.DonationStatusSuccess
	d.Fee = 7500

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5000", stats.GrossRaised.String())
	assert.Equal(t, "75", stats.TotalFees.String())
	assert.Equal(t, "4925", stats.NetRaised.String())
}
