package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/service"
)

// SubmitApplicationUseCase orchestrates new application submission: it loads
// the policy and the applicant's latest financial-health snapshot, derives
// the proxy credit score and health rating, evaluates policy fit, and
// persists the application in pending status with the scoring snapshot
// fixed for auditability.
type SubmitApplicationUseCase struct {
	appRepo    port.ApplicationRepository
	policyRepo port.PolicyRepository
	snapshots  port.SnapshotRepository
	directory  port.MSMEDirectory
	idSource   port.ApplicationIDSource
	publisher  port.EventPublisher
	evaluator  *service.PolicyFitEvaluator
	logger     *slog.Logger
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	appRepo port.ApplicationRepository,
	policyRepo port.PolicyRepository,
	snapshots port.SnapshotRepository,
	directory port.MSMEDirectory,
	idSource port.ApplicationIDSource,
	publisher port.EventPublisher,
	evaluator *service.PolicyFitEvaluator,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		appRepo:    appRepo,
		policyRepo: policyRepo,
		snapshots:  snapshots,
		directory:  directory,
		idSource:   idSource,
		publisher:  publisher,
		evaluator:  evaluator,
		logger:     logger,
	}
}

// Execute creates, scores, and persists a loan application.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	if err := validateSubmitRequest(req); err != nil {
		return dto.ApplicationResponse{}, err
	}

	now := time.Now().UTC()

	// 1. Load the policy the MSME is applying against.
	policy, err := uc.policyRepo.FindByID(ctx, req.PolicyID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load policy: %w", err)
	}

	// 2. Resolve the applicant and verify the borrower role.
	profile, err := uc.directory.FindProfile(ctx, req.MSMEID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load MSME profile: %w", err)
	}
	if !profile.IsMSME() {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: only MSME users can submit loan applications", ErrValidation)
	}

	// 3. Load the latest snapshot. A missing snapshot is valid input: the
	// zero value scores at the floor and rates the neutral Fair.
	snapshot, found, err := uc.snapshots.FindLatestByMSME(ctx, profile.ID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load financial snapshot: %w", err)
	}
	if !found {
		uc.logger.WarnContext(ctx, "no financial health data for MSME, scoring with defaults",
			"msme_id", profile.ID,
		)
		snapshot = model.FinancialHealthSnapshot{}
	}

	// 4. Evaluate policy fit with the requested amount known.
	fit := uc.evaluator.Evaluate(policy, snapshot, profile.VintageMonths(), req.RequestedAmount)

	// 5. Assign the application id. Sequence failure falls back to a
	// timestamp-derived suffix; recovered and logged, never surfaced.
	id, err := uc.idSource.NextApplicationID(ctx)
	if err != nil {
		id = fallbackApplicationID(now)
		uc.logger.WarnContext(ctx, "application id sequence failed, using timestamp fallback",
			"fallback_id", id,
			"error", err,
		)
	}

	// 6. Create the aggregate in pending status.
	app, err := model.NewApplication(
		id, profile.ID, req.LenderID, policy.ID(),
		req.RequestedAmount,
		fit.CreditScore, fit.Health, fit.FitScore, fit.Details,
		now,
	)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 7. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 8. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}

func validateSubmitRequest(req dto.SubmitApplicationRequest) error {
	switch {
	case req.MSMEID == "":
		return fmt.Errorf("%w: msme_id is required", ErrValidation)
	case req.LenderID == "":
		return fmt.Errorf("%w: lender_id is required", ErrValidation)
	case req.PolicyID == "":
		return fmt.Errorf("%w: policy_id is required", ErrValidation)
	case req.RequestedAmount.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("%w: requested_amount must be positive", ErrValidation)
	}
	return nil
}

// fallbackApplicationID builds APP + the last six digits of the unix
// millisecond clock. Weaker uniqueness than the sequence; collisions are
// possible under concurrent fallback use.
func fallbackApplicationID(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return "APP" + millis[len(millis)-6:]
}
