package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaezeudoka/hopewell-foundation-backend/internal/donations"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
)

type fakeDonationsService struct {
	createIn  *donations.CreateIntentInput
	verifyRef string
	verifyOut *donations.VerifyOutcome
	verifyErr error
	listIn    *donations.ListParams
}

func (f *fakeDonationsService) CreateIntent(_ context.Context, input donations.CreateIntentInput) (*models.Donation, error) {
	f.createIn = &input
	return &models.Donation{
		ID:        uuid.New(),
		Reference: "hw_test",
		Status:    enums.DonationStatusPending,
		Amount:    input.Amount,
	}, nil
}

func (f *fakeDonationsService) ApplyGatewayResult(_ context.Context, _ string, _ donations.GatewayResult) (*donations.TransitionOutcome, error) {
	return nil, nil
}

func (f *fakeDonationsService) Verify(_ context.Context, reference string) (*donations.VerifyOutcome, error) {
	f.verifyRef = reference
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if f.verifyOut != nil {
		return f.verifyOut, nil
	}
	return &donations.VerifyOutcome{Status: "success"}, nil
}

func (f *fakeDonationsService) List(_ context.Context, params donations.ListParams) (*donations.ListResult, error) {
	f.listIn = &params
	return &donations.ListResult{}, nil
}

func (f *fakeDonationsService) Stats(_ context.Context) (*donations.Stats, error) {
	return &donations.Stats{TotalCount: 3}, nil
}

func TestCreateDonationReturnsPendingRecord(t *testing.T) {
	svc := &fakeDonationsService{}
	handler := CreateDonation(svc, nil)

	body, _ := json.Marshal(map[string]any{
		"amount":      500000,
		"donor_email": "donor@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, svc.createIn)
	assert.Equal(t, int64(500000), svc.createIn.Amount)
	require.NotNil(t, svc.createIn.DonorEmail)
	assert.Equal(t, "donor@example.com", *svc.createIn.DonorEmail)
}

func TestCreateDonationRejectsNonPositiveAmount(t *testing.T) {
	svc := &fakeDonationsService{}
	handler := CreateDonation(svc, nil)

	body, _ := json.Marshal(map[string]any{"amount": 0})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.createIn)
}

func TestVerifyDonationPassesReference(t *testing.T) {
	svc := &fakeDonationsService{}
	handler := VerifyDonation(svc, nil)

	body, _ := json.Marshal(map[string]string{"reference": "hw_abc"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations/verify", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "hw_abc", svc.verifyRef)
}

func TestVerifyDonationUnknownReferenceIs404(t *testing.T) {
	svc := &fakeDonationsService{verifyErr: pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")}
	handler := VerifyDonation(svc, nil)

	body, _ := json.Marshal(map[string]string{"reference": "hw_missing"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations/verify", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListDonationsParsesFilters(t *testing.T) {
	svc := &fakeDonationsService{}
	handler := ListDonations(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/donations?limit=10&status=success&from=2026-01-01T00:00:00Z&q=borehole", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, svc.listIn)
	assert.Equal(t, 10, svc.listIn.Limit)
	require.NotNil(t, svc.listIn.Filters.Status)
	assert.Equal(t, enums.DonationStatusSuccess, *svc.listIn.Filters.Status)
	require.NotNil(t, svc.listIn.Filters.DateFrom)
	assert.Equal(t, "borehole", svc.listIn.Filters.Query)
}

func TestListDonationsRejectsBadStatus(t *testing.T) {
	svc := &fakeDonationsService{}
	handler := ListDonations(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/donations?status=refunded", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.listIn)
}
