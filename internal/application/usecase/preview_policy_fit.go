package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msmebridge/marketplace/internal/application/dto"
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/service"
)

// PreviewPolicyFitUseCase runs the eligibility check an MSME sees before
// entering a requested amount. The amount criterion is awarded
// unconditionally in this mode; the authoritative check happens at
// submission. Nothing is persisted.
type PreviewPolicyFitUseCase struct {
	policyRepo port.PolicyRepository
	snapshots  port.SnapshotRepository
	directory  port.MSMEDirectory
	evaluator  *service.PolicyFitEvaluator
	logger     *slog.Logger
}

// NewPreviewPolicyFitUseCase wires dependencies.
func NewPreviewPolicyFitUseCase(
	policyRepo port.PolicyRepository,
	snapshots port.SnapshotRepository,
	directory port.MSMEDirectory,
	evaluator *service.PolicyFitEvaluator,
	logger *slog.Logger,
) *PreviewPolicyFitUseCase {
	return &PreviewPolicyFitUseCase{
		policyRepo: policyRepo,
		snapshots:  snapshots,
		directory:  directory,
		evaluator:  evaluator,
		logger:     logger,
	}
}

// Execute computes the preview fit result.
func (uc *PreviewPolicyFitUseCase) Execute(
	ctx context.Context,
	req dto.PreviewPolicyFitRequest,
) (dto.FitPreviewResponse, error) {
	if req.PolicyID == "" {
		return dto.FitPreviewResponse{}, fmt.Errorf("%w: policy_id is required", ErrValidation)
	}
	if req.MSMEID == "" {
		return dto.FitPreviewResponse{}, fmt.Errorf("%w: msme_id is required", ErrValidation)
	}

	policy, err := uc.policyRepo.FindByID(ctx, req.PolicyID)
	if err != nil {
		return dto.FitPreviewResponse{}, fmt.Errorf("load policy: %w", err)
	}

	profile, err := uc.directory.FindProfile(ctx, req.MSMEID)
	if err != nil {
		return dto.FitPreviewResponse{}, fmt.Errorf("load MSME profile: %w", err)
	}

	snapshot, found, err := uc.snapshots.FindLatestByMSME(ctx, profile.ID)
	if err != nil {
		return dto.FitPreviewResponse{}, fmt.Errorf("load financial snapshot: %w", err)
	}
	if !found {
		uc.logger.DebugContext(ctx, "previewing fit without financial health data",
			"msme_id", profile.ID,
			"policy_id", policy.ID(),
		)
		snapshot = model.FinancialHealthSnapshot{}
	}

	fit := uc.evaluator.Preview(policy, snapshot, profile.VintageMonths())

	return dto.FitPreviewResponse{
		PolicyID:          policy.ID(),
		MSMEID:            profile.ID,
		PolicyFitScore:    fit.FitScore,
		FitDetails:        fit.Details,
		CalculatedScore:   fit.CreditScore,
		CalculatedHealth:  fit.Health.String(),
		VintageMonths:     profile.VintageMonths(),
		SnapshotAvailable: found,
	}, nil
}
