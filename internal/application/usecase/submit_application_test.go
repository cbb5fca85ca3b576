package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/service"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

var testLogger = slog.New(slog.DiscardHandler)

func activePolicy(t *testing.T) model.Policy {
	t.Helper()
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return model.ReconstructPolicy(
		"policy-1", "lender-1", "Working Capital", "",
		decimal.NewFromFloat(14.5), decimal.NewFromInt(5),
		600, valueobject.HealthRatingGood, 24,
		true, now, now,
	)
}

func msmeProfile() model.MSMEProfile {
	return model.MSMEProfile{
		ID:                   "msme-1",
		Name:                 "Sharma Textiles",
		Role:                 model.RoleMSME,
		Email:                "accounts@sharmatextiles.in",
		Phone:                "+91-9800000001",
		GSTIN:                "27AAACS1234A1Z5",
		MSMEType:             "small",
		Sector:               "textiles",
		Address:              "Plot 14, MIDC, Bhiwandi",
		BusinessVintageYears: 3,
	}
}

func healthySnapshot() model.FinancialHealthSnapshot {
	return model.FinancialHealthSnapshot{
		MSMEID:                 "msme-1",
		ReportID:               "rep-1",
		NetCashflow:            decimal.NewFromInt(50_000),
		CashflowStabilityScore: 0.7,
		VolatilityScore:        0.4,
		GeneratedAt:            time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newSubmitFixture(t *testing.T) (*SubmitApplicationUseCase, *mockApplicationRepo, *mockPublisher) {
	t.Helper()
	appRepo := &mockApplicationRepo{}
	publisher := &mockPublisher{}
	policyRepo := &mockPolicyRepo{
		findByIDFn: func(_ context.Context, _ string) (model.Policy, error) {
			return activePolicy(t), nil
		},
	}
	snapshots := &mockSnapshotRepo{
		findLatestFn: func(_ context.Context, _ string) (model.FinancialHealthSnapshot, bool, error) {
			return healthySnapshot(), true, nil
		},
	}
	directory := &mockDirectory{
		findProfileFn: func(_ context.Context, _ string) (model.MSMEProfile, error) {
			return msmeProfile(), nil
		},
	}
	uc := NewSubmitApplicationUseCase(
		appRepo, policyRepo, snapshots, directory,
		&mockIDSource{}, publisher,
		service.NewPolicyFitEvaluator(service.DefaultAmountUnitScale),
		testLogger,
	)
	return uc, appRepo, publisher
}

func submitRequest() dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		MSMEID:          "msme-1",
		LenderID:        "lender-1",
		PolicyID:        "policy-1",
		RequestedAmount: decimal.NewFromInt(400_000),
	}
}

func TestSubmitApplication_Success(t *testing.T) {
	uc, appRepo, publisher := newSubmitFixture(t)

	resp, err := uc.Execute(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.Equal(t, "APP000001", resp.ApplicationID)
	assert.Equal(t, "pending", resp.Status)
	// stability 0.7 with positive cashflow -> 680, Good; all criteria pass.
	assert.Equal(t, 680, resp.CreditScore)
	assert.Equal(t, "Good", resp.FinancialHealth)
	assert.Equal(t, 100, resp.PolicyFitScore)
	assert.True(t, resp.FitDetails.AmountWithinLimit)

	require.Len(t, appRepo.saved, 1)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "marketplace.application.submitted", publisher.published[0].EventType())
}

func TestSubmitApplication_Validation(t *testing.T) {
	uc, _, _ := newSubmitFixture(t)

	tests := []struct {
		name   string
		mutate func(*dto.SubmitApplicationRequest)
	}{
		{"missing msme", func(r *dto.SubmitApplicationRequest) { r.MSMEID = "" }},
		{"missing lender", func(r *dto.SubmitApplicationRequest) { r.LenderID = "" }},
		{"missing policy", func(r *dto.SubmitApplicationRequest) { r.PolicyID = "" }},
		{"zero amount", func(r *dto.SubmitApplicationRequest) { r.RequestedAmount = decimal.Zero }},
		{"negative amount", func(r *dto.SubmitApplicationRequest) { r.RequestedAmount = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := submitRequest()
			tt.mutate(&req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSubmitApplication_PolicyNotFound(t *testing.T) {
	appRepo := &mockApplicationRepo{}
	uc := NewSubmitApplicationUseCase(
		appRepo,
		&mockPolicyRepo{}, // default FindByID returns ErrNotFound
		&mockSnapshotRepo{}, &mockDirectory{}, &mockIDSource{}, &mockPublisher{},
		service.NewPolicyFitEvaluator(service.DefaultAmountUnitScale),
		testLogger,
	)

	_, err := uc.Execute(context.Background(), submitRequest())
	assert.ErrorIs(t, err, port.ErrNotFound)
	assert.Empty(t, appRepo.saved)
}

func TestSubmitApplication_NonMSMERoleRejected(t *testing.T) {
	policyRepo := &mockPolicyRepo{
		findByIDFn: func(_ context.Context, _ string) (model.Policy, error) {
			return activePolicy(t), nil
		},
	}
	directory := &mockDirectory{
		findProfileFn: func(_ context.Context, _ string) (model.MSMEProfile, error) {
			p := msmeProfile()
			p.Role = "lender"
			return p, nil
		},
	}
	uc := NewSubmitApplicationUseCase(
		&mockApplicationRepo{}, policyRepo, &mockSnapshotRepo{}, directory,
		&mockIDSource{}, &mockPublisher{},
		service.NewPolicyFitEvaluator(service.DefaultAmountUnitScale),
		testLogger,
	)

	_, err := uc.Execute(context.Background(), submitRequest())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitApplication_MissingSnapshotScoresWithDefaults(t *testing.T) {
	policyRepo := &mockPolicyRepo{
		findByIDFn: func(_ context.Context, _ string) (model.Policy, error) {
			return activePolicy(t), nil
		},
	}
	directory := &mockDirectory{
		findProfileFn: func(_ context.Context, _ string) (model.MSMEProfile, error) {
			return msmeProfile(), nil
		},
	}
	uc := NewSubmitApplicationUseCase(
		&mockApplicationRepo{}, policyRepo,
		&mockSnapshotRepo{}, // default: found=false
		directory, &mockIDSource{}, &mockPublisher{},
		service.NewPolicyFitEvaluator(service.DefaultAmountUnitScale),
		testLogger,
	)

	resp, err := uc.Execute(context.Background(), submitRequest())
	require.NoError(t, err)

	// No data degrades to the score floor and the neutral Fair rating; the
	// application is still created, just with a low fit score.
	assert.Equal(t, 300, resp.CreditScore)
	assert.Equal(t, "Fair", resp.FinancialHealth)
	assert.Equal(t, 50, resp.PolicyFitScore) // vintage and amount still pass
	assert.Equal(t, "pending", resp.Status)
}

func TestSubmitApplication_IDSequenceFallback(t *testing.T) {
	policyRepo := &mockPolicyRepo{
		findByIDFn: func(_ context.Context, _ string) (model.Policy, error) {
			return activePolicy(t), nil
		},
	}
	directory := &mockDirectory{
		findProfileFn: func(_ context.Context, _ string) (model.MSMEProfile, error) {
			return msmeProfile(), nil
		},
	}
	idSource := &mockIDSource{
		nextFn: func(_ context.Context) (string, error) {
			return "", errors.New("sequence unavailable")
		},
	}
	uc := NewSubmitApplicationUseCase(
		&mockApplicationRepo{}, policyRepo, &mockSnapshotRepo{}, directory,
		idSource, &mockPublisher{},
		service.NewPolicyFitEvaluator(service.DefaultAmountUnitScale),
		testLogger,
	)

	resp, err := uc.Execute(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.ApplicationID, "APP"))
	assert.Len(t, resp.ApplicationID, 9)
}

func TestSubmitApplication_SaveFailure(t *testing.T) {
	uc, appRepo, publisher := newSubmitFixture(t)
	appRepo.saveFn = func(_ context.Context, _ model.Application) error {
		return errors.New("connection reset")
	}

	_, err := uc.Execute(context.Background(), submitRequest())
	assert.Error(t, err)
	assert.Empty(t, publisher.published)
}
