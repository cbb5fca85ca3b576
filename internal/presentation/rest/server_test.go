package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msmebridge/marketplace/internal/application/usecase"
	"github.com/msmebridge/marketplace/internal/domain/event"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/service"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

var testLogger = slog.New(slog.DiscardHandler)

// In-memory fakes wired through the real use cases; the handler tests
// exercise the full request path below the HTTP layer.

type fakeAppRepo struct {
	apps map[string]model.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]model.Application)}
}

func (f *fakeAppRepo) Save(_ context.Context, app model.Application) error {
	f.apps[app.ID()] = app
	return nil
}

func (f *fakeAppRepo) Update(_ context.Context, app model.Application) error {
	if _, ok := f.apps[app.ID()]; !ok {
		return port.ErrNotFound
	}
	f.apps[app.ID()] = app
	return nil
}

func (f *fakeAppRepo) FindByID(_ context.Context, id string) (model.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return model.Application{}, port.ErrNotFound
	}
	return app, nil
}

func (f *fakeAppRepo) FindByMSME(_ context.Context, msmeID string, filter port.ApplicationFilter) ([]model.Application, error) {
	var out []model.Application
	for _, app := range f.apps {
		if app.MSMEID() == msmeID && (filter.Status.IsZero() || app.Status().Equal(filter.Status)) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) FindByLender(_ context.Context, lenderID string, filter port.ApplicationFilter) ([]model.Application, error) {
	var out []model.Application
	for _, app := range f.apps {
		if app.LenderID() == lenderID && (filter.Status.IsZero() || app.Status().Equal(filter.Status)) {
			out = append(out, app)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	policies map[string]model.Policy
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{policies: make(map[string]model.Policy)}
}

func (f *fakePolicyRepo) Save(_ context.Context, p model.Policy) error {
	f.policies[p.ID()] = p
	return nil
}

func (f *fakePolicyRepo) FindByID(_ context.Context, id string) (model.Policy, error) {
	p, ok := f.policies[id]
	if !ok {
		return model.Policy{}, port.ErrNotFound
	}
	return p, nil
}

func (f *fakePolicyRepo) FindByLender(_ context.Context, lenderID string, activeOnly bool) ([]model.Policy, error) {
	var out []model.Policy
	for _, p := range f.policies {
		if p.LenderID() == lenderID && (!activeOnly || p.IsActive()) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePolicyRepo) FindActive(_ context.Context) ([]model.Policy, error) {
	var out []model.Policy
	for _, p := range f.policies {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSnapshotRepo struct {
	snapshot model.FinancialHealthSnapshot
	found    bool
}

func (f *fakeSnapshotRepo) FindLatestByMSME(_ context.Context, _ string) (model.FinancialHealthSnapshot, bool, error) {
	return f.snapshot, f.found, nil
}

type fakeDirectory struct {
	profiles map[string]model.MSMEProfile
}

func (f *fakeDirectory) FindProfile(_ context.Context, id string) (model.MSMEProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return model.MSMEProfile{}, port.ErrNotFound
	}
	return p, nil
}

type fakeIDSource struct{ next int }

func (f *fakeIDSource) NextApplicationID(_ context.Context) (string, error) {
	f.next++
	return fmt.Sprintf("APP%06d", f.next), nil
}

type fakePublisher struct{ events []event.DomainEvent }

func (f *fakePublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	f.events = append(f.events, events...)
	return nil
}

type fixture struct {
	handler    http.Handler
	appRepo    *fakeAppRepo
	policyRepo *fakePolicyRepo
	policyID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	policy := model.ReconstructPolicy(
		"policy-1", "lender-1", "Working Capital", "",
		decimal.NewFromFloat(14.5), decimal.NewFromInt(5),
		600, valueobject.HealthRatingGood, 24,
		true, now, now,
	)

	appRepo := newFakeAppRepo()
	policyRepo := newFakePolicyRepo()
	policyRepo.policies[policy.ID()] = policy

	snapshots := &fakeSnapshotRepo{
		snapshot: model.FinancialHealthSnapshot{
			MSMEID:                 "msme-1",
			ReportID:               "rep-1",
			NetCashflow:            decimal.NewFromInt(50_000),
			CashflowStabilityScore: 0.7,
			VolatilityScore:        0.4,
			GeneratedAt:            now,
		},
		found: true,
	}
	directory := &fakeDirectory{profiles: map[string]model.MSMEProfile{
		"msme-1": {
			ID:                   "msme-1",
			Name:                 "Sharma Textiles",
			Role:                 model.RoleMSME,
			GSTIN:                "27AAACS1234A1Z5",
			Sector:               "textiles",
			BusinessVintageYears: 3,
		},
	}}
	publisher := &fakePublisher{}

	evaluator := service.NewPolicyFitEvaluator(service.DefaultAmountUnitScale)

	appHandler := NewApplicationHandler(
		usecase.NewSubmitApplicationUseCase(appRepo, policyRepo, snapshots, directory, &fakeIDSource{}, publisher, evaluator, testLogger),
		usecase.NewGetApplicationUseCase(appRepo),
		usecase.NewListApplicationsUseCase(appRepo, directory, testLogger),
		usecase.NewUpdateApplicationStatusUseCase(appRepo, publisher),
		usecase.NewGetLenderStatsUseCase(appRepo, service.NewLenderStatsAggregator()),
		usecase.NewGetMSMEDetailsUseCase(appRepo, directory, snapshots, testLogger),
		testLogger,
	)
	policyHandler := NewPolicyHandler(
		usecase.NewCreatePolicyUseCase(policyRepo, publisher),
		usecase.NewGetPolicyUseCase(policyRepo),
		usecase.NewListPoliciesUseCase(policyRepo),
		usecase.NewUpdatePolicyUseCase(policyRepo),
		usecase.NewDeactivatePolicyUseCase(policyRepo, publisher),
		usecase.NewPreviewPolicyFitUseCase(policyRepo, snapshots, directory, evaluator, testLogger),
		testLogger,
	)
	healthHandler := NewHealthHandler("marketplace", nil, testLogger)

	server := NewServer(ServerConfig{Port: 0}, appHandler, policyHandler, healthHandler, testLogger)
	return &fixture{
		handler:    server.Handler(),
		appRepo:    appRepo,
		policyRepo: policyRepo,
		policyID:   policy.ID(),
	}
}

func (f *fixture) do(t *testing.T, method, path string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func (f *fixture) submit(t *testing.T) string {
	t.Helper()
	rec, env := f.do(t, http.MethodPost, "/api/v1/applications",
		`{"msme_id":"msme-1","lender_id":"lender-1","policy_id":"policy-1","requested_amount":"400000"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := env.Data.(map[string]any)
	return data["application_id"].(string)
}

func TestSubmitApplicationEndpoint(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/applications",
		`{"msme_id":"msme-1","lender_id":"lender-1","policy_id":"policy-1","requested_amount":"400000"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	data := env.Data.(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(680), data["msme_credit_score"])
	assert.Equal(t, "Good", data["msme_financial_health"])
	assert.Equal(t, float64(100), data["policy_fit_score"])
}

func TestSubmitApplicationEndpoint_ValidationError(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/applications",
		`{"lender_id":"lender-1","policy_id":"policy-1","requested_amount":"400000"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "msme_id")
}

func TestSubmitApplicationEndpoint_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/applications", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestGetApplicationEndpoint(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/applications/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/applications/APP999999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t)

	rec, env := f.do(t, http.MethodPut, "/api/v1/applications/"+id+"/status",
		`{"status":"approved","lender_notes":"ok","approved_amount":"350000"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]any)
	assert.Equal(t, "approved", data["status"])
	assert.NotNil(t, data["approved_at"])
}

func TestUpdateStatusEndpoint_InvalidTransition(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t)

	rec, _ := f.do(t, http.MethodPut, "/api/v1/applications/"+id+"/status",
		`{"status":"rejected","lender_notes":"no"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Rejected is terminal; approving afterwards conflicts.
	rec, env := f.do(t, http.MethodPut, "/api/v1/applications/"+id+"/status",
		`{"status":"approved","approved_amount":"100000"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
}

func TestUpdateStatusEndpoint_UnknownStatus(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t)

	rec, _ := f.do(t, http.MethodPut, "/api/v1/applications/"+id+"/status", `{"status":"escalated"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListApplicationEndpoints(t *testing.T) {
	f := newFixture(t)
	f.submit(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/applications/msme/msme-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data, 1)

	rec, env = f.do(t, http.MethodGet, "/api/v1/applications/lender/lender-1?status=pending", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data, 1)

	// Lender-side rows carry the applicant summary.
	row := env.Data.([]any)[0].(map[string]any)
	info, ok := row["msme_info"].(map[string]any)
	require.True(t, ok, "expected msme_info on lender listing")
	assert.Equal(t, "Sharma Textiles", info["name"])
	assert.Equal(t, "textiles", info["sector"])

	rec, _ = f.do(t, http.MethodGet, "/api/v1/applications/lender/lender-1?sortBy=createdAt&sortOrder=asc", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/applications/lender/lender-1?sortBy=passwordHash", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/applications/lender/lender-1?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMSMEDetailsEndpoint(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/applications/"+id+"/msme-details", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	data := env.Data.(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "Sharma Textiles", user["name"])
	assert.Equal(t, "27AAACS1234A1Z5", user["gstin"])

	health := data["financial_health"].(map[string]any)
	assert.Equal(t, 0.7, health["cashflow_stability_score"])

	app := data["application"].(map[string]any)
	assert.Equal(t, id, app["application_id"])

	rec, _ = f.do(t, http.MethodGet, "/api/v1/applications/APP999999/msme-details", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Unknown subresources under an application id are not routed.
	rec, _ = f.do(t, http.MethodGet, "/api/v1/applications/"+id+"/audit", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLenderStatsEndpoint(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t)
	_, _ = f.do(t, http.MethodPut, "/api/v1/applications/"+id+"/status",
		`{"status":"approved","approved_amount":"350000"}`)

	rec, env := f.do(t, http.MethodGet, "/api/v1/applications/lender/lender-1/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	data := env.Data.(map[string]any)
	assert.Equal(t, float64(1), data["total_applications"])
	assert.Equal(t, float64(1), data["total_approved"])
	assert.Equal(t, "350000", data["total_money_lent"])
}

func TestPolicyEndpoints(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/policies",
		`{"lender_id":"lender-1","name":"Equipment Loan","interestRate":"12","maxAmount":"10","minCreditScore":650,"minFinancialHealth":"Good","minVintageMonths":12}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := env.Data.(map[string]any)
	newID := created["id"].(string)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/policies/"+newID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = f.do(t, http.MethodGet, "/api/v1/policies/active", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data, 2)

	rec, env = f.do(t, http.MethodDelete, "/api/v1/policies/"+newID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	deactivated := env.Data.(map[string]any)
	assert.Equal(t, false, deactivated["isActive"])

	rec, env = f.do(t, http.MethodGet, "/api/v1/policies/active", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data, 1)
}

func TestFitPreviewEndpoint(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/policies/"+f.policyID+"/fit-preview",
		`{"msme_id":"msme-1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := env.Data.(map[string]any)
	assert.Equal(t, float64(100), data["policy_fit_score"])
	assert.Equal(t, float64(680), data["calculated_credit_score"])
	assert.Equal(t, true, data["snapshot_available"])
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessReportsFailingDependency(t *testing.T) {
	health := NewHealthHandler("marketplace", map[string]ReadinessCheck{
		"postgres": func(_ context.Context) error { return errors.New("connection refused") },
	}, testLogger)

	mux := http.NewServeMux()
	health.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
